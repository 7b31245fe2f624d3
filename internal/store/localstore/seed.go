package localstore

import (
	"context"
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// Initialize seeds the demo dataset exactly once. Subsequent calls are
// no-ops thanks to the initialized marker, so restarting the server never
// clobbers data entered through the portal.
func (s *Store) Initialize(ctx context.Context) (err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "Initialize", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	initialized, err := s.isInitialized()
	if err != nil {
		return err
	}
	if initialized {
		s.logger.Debug(ctx, "Local store already initialized, skipping seed")
		return nil
	}

	// Seed timestamps come from the store clock so records created after
	// seeding always sort ahead of the demo data.
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := putCollection(txn, keyUsers, toUserRecords(demoUsers(s.createTime))); err != nil {
			return err
		}
		if err := putCollection(txn, keyFAQs, demoFAQs(s.createTime)); err != nil {
			return err
		}
		if err := putCollection(txn, keyAnnouncements, demoAnnouncements(s.createTime)); err != nil {
			return err
		}
		if err := putCollection(txn, keySystemUpdates, demoSystemUpdates(s.createTime)); err != nil {
			return err
		}
		if err := putCollection(txn, keyOtherDocuments, demoOtherDocuments(s.createTime)); err != nil {
			return err
		}
		if err := putCollection(txn, keyTrainingMaterials, demoTrainingMaterials(s.createTime)); err != nil {
			return err
		}
		if err := putCollection(txn, keyTickets, []models.Ticket{}); err != nil {
			return err
		}
		if err := txn.Set([]byte(keyInitialized), []byte("true")); err != nil {
			return contextutils.WrapError(err, "failed to set initialized marker")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "Local store seeded with demo data")
	return nil
}

func (s *Store) isInitialized() (bool, error) {
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyInitialized))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return contextutils.WrapError(err, "failed to read initialized marker")
		}
		found = true
		return nil
	})
	return found, err
}

func demoUsers(next func() time.Time) []models.User {
	return []models.User{
		{ID: newID(), Email: "admin@company.com", Name: "Admin User", Role: models.RoleAdmin, Division: "IT", IsActive: true, CreatedAt: next()},
		{ID: newID(), Email: "cto@company.com", Name: "CTO Admin", Role: models.RoleAdmin, Division: "IT", IsActive: true, CreatedAt: next()},
		{ID: newID(), Email: "support@company.com", Name: "Support Agent", Role: models.RoleSupport, Division: "Support", IsActive: true, CreatedAt: next()},
		{ID: newID(), Email: "user@company.com", Name: "Regular User", Role: models.RoleUser, Division: "Sales", IsActive: true, CreatedAt: next()},
		{ID: newID(), Email: "unassigned@company.com", Name: "Unassigned User", Role: models.RoleUnassigned, IsActive: true, CreatedAt: next()},
	}
}

func demoFAQs(next func() time.Time) []models.FAQ {
	faqs := []models.FAQ{
		{
			ID:       newID(),
			Title:    "How do I reset my password?",
			Content:  `To reset your password, go to the login page and click "Forgot Password". Enter your email address and follow the instructions sent to your email.`,
			Category: models.FAQCategoryITSystems,
			Tags:     []string{"password", "login", "reset"},
		},
		{
			ID:       newID(),
			Title:    "What are the company holidays?",
			Content:  "Company holidays include New Year's Day, Memorial Day, Independence Day, Labor Day, Thanksgiving, and Christmas Day. Additional floating holidays may be available.",
			Category: models.FAQCategoryPolicies,
			Tags:     []string{"holidays", "time-off", "benefits"},
		},
		{
			ID:       newID(),
			Title:    "How do I connect to the office WiFi?",
			Content:  `Connect to the "CompanyWiFi" network using the password provided by IT. If you need the password, contact the IT support team.`,
			Category: models.FAQCategoryNetwork,
			Tags:     []string{"wifi", "network", "connection"},
		},
	}
	for i := range faqs {
		ts := next()
		faqs[i].CreatedAt = ts
		faqs[i].UpdatedAt = ts
	}
	return faqs
}

func demoAnnouncements(next func() time.Time) []models.Announcement {
	first := next()
	second := next()
	return []models.Announcement{
		{
			ID:             newID(),
			Title:          "Office Closure Notice",
			Description:    "The office will be closed on Friday, December 22nd for the holiday weekend. Regular operations will resume on Monday, December 26th.",
			Type:           models.AnnouncementAlert,
			TargetAudience: "All Employees",
			ValidityDate:   first.Add(30 * 24 * time.Hour),
			Attachments:    []string{},
			IsActive:       true,
			CreatedAt:      first,
		},
		{
			ID:             newID(),
			Title:          "New Employee Benefits Program",
			Description:    "We are excited to announce enhancements to our employee benefits program, including improved health coverage and additional wellness benefits.",
			Type:           models.AnnouncementMemo,
			TargetAudience: "All Employees",
			ValidityDate:   second.Add(60 * 24 * time.Hour),
			Attachments:    []string{},
			IsActive:       true,
			CreatedAt:      second,
		},
	}
}

func demoSystemUpdates(next func() time.Time) []models.SystemUpdate {
	ts := next()
	return []models.SystemUpdate{
		{
			ID:             newID(),
			Title:          "Email System Maintenance",
			Description:    "Scheduled maintenance on the email system will occur this weekend. Brief interruptions may be experienced.",
			Type:           models.SystemUpdateMaintenance,
			Classification: models.ClassificationInternal,
			Severity:       models.SeverityMedium,
			Status:         models.SystemUpdateScheduled,
			Date:           ts.Add(7 * 24 * time.Hour),
			ImageURL:       "https://images.pexels.com/photos/1181675/pexels-photo-1181675.jpeg?auto=compress&cs=tinysrgb&w=600&h=400&dpr=2",
			CreatedAt:      ts,
		},
	}
}

func demoOtherDocuments(next func() time.Time) []models.OtherDocument {
	return []models.OtherDocument{
		{
			ID:           newID(),
			DocumentName: "Employee Handbook",
			Description:  "Complete guide to company policies, procedures, and benefits",
			FileURL:      "https://drive.google.com/file/d/example-handbook/view",
			CreatedBy:    "HR Department",
			CreatedAt:    next(),
		},
		{
			ID:           newID(),
			DocumentName: "IT Security Policy",
			Description:  "Guidelines for maintaining information security and data protection",
			FileURL:      "https://drive.google.com/file/d/example-security-policy/view",
			CreatedBy:    "IT Department",
			CreatedAt:    next(),
		},
	}
}

func demoTrainingMaterials(next func() time.Time) []models.TrainingMaterial {
	materials := []models.TrainingMaterial{
		{
			ID:        newID(),
			Type:      models.TrainingAwarenessCampaign,
			Title:     "Information Security Awareness",
			ImageURL:  "https://images.pexels.com/photos/60504/security-protection-anti-virus-software-60504.jpeg?auto=compress&cs=tinysrgb&w=800",
			CreatedBy: "IT Security Team",
			IsActive:  true,
		},
		{
			ID:        newID(),
			Type:      models.TrainingAwarenessCampaign,
			Title:     "Phishing Email Recognition",
			ImageURL:  "https://images.pexels.com/photos/4164418/pexels-photo-4164418.jpeg?auto=compress&cs=tinysrgb&w=800",
			CreatedBy: "IT Security Team",
			IsActive:  true,
		},
		{
			ID:        newID(),
			Type:      models.TrainingAwarenessCampaign,
			Title:     "Data Privacy Protection",
			ImageURL:  "https://images.pexels.com/photos/5380664/pexels-photo-5380664.jpeg?auto=compress&cs=tinysrgb&w=800",
			CreatedBy: "Legal Team",
			IsActive:  true,
		},
		{
			ID:               newID(),
			Type:             models.TrainingVideo,
			Category:         "Security",
			Level:            "Beginner",
			VideoTitle:       "Password Security Best Practices",
			VideoDescription: "Learn how to create and manage secure passwords effectively",
			VideoURL:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			ThumbnailURL:     "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
			CreatedBy:        "IT Training Team",
			IsActive:         true,
		},
		{
			ID:               newID(),
			Type:             models.TrainingVideo,
			Category:         "Professional Development",
			Level:            "Intermediate",
			VideoTitle:       "Effective Communication Skills",
			VideoDescription: "Improve your communication skills for better workplace collaboration",
			VideoURL:         "https://www.youtube.com/watch?v=example123",
			ThumbnailURL:     "https://images.pexels.com/photos/3184291/pexels-photo-3184291.jpeg?auto=compress&cs=tinysrgb&w=400",
			CreatedBy:        "HR Training Team",
			IsActive:         true,
		},
		{
			ID:               newID(),
			Type:             models.TrainingVideo,
			Category:         "Security",
			Level:            "Intermediate",
			VideoTitle:       "Social Engineering Awareness",
			VideoDescription: "Recognize and defend against social engineering attacks",
			VideoURL:         "https://www.youtube.com/watch?v=social123",
			ThumbnailURL:     "https://img.youtube.com/vi/social123/maxresdefault.jpg",
			CreatedBy:        "Security Team",
			IsActive:         true,
		},
	}
	for i := range materials {
		materials[i].CreatedAt = next()
	}
	return materials
}
