package seed

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/billing"
)

// EnsureSeeded populates an empty data directory with a demo tenant: one
// admin account, the default categories, a dozen documents and some activity
// history. It runs once at startup and is a no-op when users already exist.
func EnsureSeeded(repos *repository.Repositories) (bool, error) {
	count, err := repos.User.Count()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	admin, err := models.CreateUser("Admin", "admin@entreprise.fr", "admin123", models.ROLE_ADMIN)
	if err != nil {
		return false, err
	}
	admin.Organization = "Mon Entreprise"
	admin.CreatedAt = daysAgo(90)
	if err := repos.User.Create(admin); err != nil {
		return false, err
	}

	for _, cat := range defaultCategories(admin.ID) {
		if err := repos.Category.Create(&cat); err != nil {
			return false, err
		}
	}
	for _, doc := range defaultDocuments(admin.ID) {
		if err := repos.Document.Create(&doc); err != nil {
			return false, err
		}
	}
	// Activities are inserted oldest first so the prepend order leaves the
	// feed newest first.
	acts := defaultActivities(admin.ID)
	for i := len(acts) - 1; i >= 0; i-- {
		if err := repos.Activity.Create(&acts[i]); err != nil {
			return false, err
		}
	}
	notifs := defaultNotifications(admin.ID)
	for i := len(notifs) - 1; i >= 0; i-- {
		if err := repos.Notification.Create(&notifs[i]); err != nil {
			return false, err
		}
	}

	billingSvc := billing.NewService(repos.Subscription, repos.Invoice, repos.User, nil, false)
	if _, err := billingSvc.StartFreePlan(admin.ID); err != nil {
		return false, err
	}

	log.Printf("[Seed] demo data created (admin@entreprise.fr)")
	return true, nil
}

func daysAgo(d int) time.Time {
	return time.Now().Add(-time.Duration(d) * 24 * time.Hour)
}

func hoursAgo(h int) time.Time {
	return time.Now().Add(-time.Duration(h) * time.Hour)
}

func defaultCategories(adminID string) []models.Category {
	created := daysAgo(60)
	return []models.Category{
		{ID: uuid.NewString(), Name: "Rapports", Icon: "FileText", Description: "Rapports annuels, trimestriels et mensuels", CreatedBy: adminID, CreatedAt: created},
		{ID: uuid.NewString(), Name: "Contrats", Icon: "FileSignature", Description: "Contrats clients, fournisseurs et partenaires", CreatedBy: adminID, CreatedAt: created},
		{ID: uuid.NewString(), Name: "Factures", Icon: "Receipt", Description: "Factures entrantes et sortantes", CreatedBy: adminID, CreatedAt: created},
		{ID: uuid.NewString(), Name: "Juridique", Icon: "Scale", Description: "Documents juridiques et conformité", CreatedBy: adminID, CreatedAt: created},
		{ID: uuid.NewString(), Name: "Ressources Humaines", Icon: "Users", Description: "Documents RH, contrats de travail, fiches de paie", CreatedBy: adminID, CreatedAt: created},
	}
}

func defaultDocuments(adminID string) []models.Document {
	return []models.Document{
		{ID: uuid.NewString(), Title: "Rapport annuel 2025", Category: "Rapports", Type: "PDF", Size: "2.4 MB", SizeBytes: 2516582, Status: models.DOCUMENT_STATUS_ARCHIVED, Date: "2025-01-15", Tags: []string{"finance", "annuel", "2025"}, Description: "Rapport annuel complet de l'exercice 2025", FileName: "rapport-annuel-2025.pdf", UploadedBy: adminID, CreatedAt: daysAgo(30), UpdatedAt: daysAgo(2)},
		{ID: uuid.NewString(), Title: "Contrat de prestation N°4521", Category: "Contrats", Type: "DOCX", Size: "842 KB", SizeBytes: 862208, Status: models.DOCUMENT_STATUS_PROCESSING, Date: "2025-02-20", Tags: []string{"prestation", "client"}, Description: "Contrat de prestation de services pour le client ABC", FileName: "contrat-4521.docx", UploadedBy: adminID, CreatedAt: daysAgo(20), UpdatedAt: daysAgo(5)},
		{ID: uuid.NewString(), Title: "Facture #2025-0892", Category: "Factures", Type: "PDF", Size: "156 KB", SizeBytes: 159744, Status: models.DOCUMENT_STATUS_ARCHIVED, Date: "2025-03-01", Tags: []string{"facture", "mars"}, Description: "Facture mensuelle de mars 2025", FileName: "facture-2025-0892.pdf", UploadedBy: adminID, CreatedAt: daysAgo(15), UpdatedAt: daysAgo(15)},
		{ID: uuid.NewString(), Title: "Politique de confidentialité v3", Category: "Juridique", Type: "PDF", Size: "1.1 MB", SizeBytes: 1153434, Status: models.DOCUMENT_STATUS_ARCHIVED, Date: "2025-01-10", Tags: []string{"rgpd", "confidentialité"}, Description: "Politique de confidentialité mise à jour v3", FileName: "politique-confidentialite-v3.pdf", UploadedBy: adminID, CreatedAt: daysAgo(45), UpdatedAt: daysAgo(10)},
		{ID: uuid.NewString(), Title: "Audit interne Q4 2025", Category: "Rapports", Type: "XLSX", Size: "3.2 MB", SizeBytes: 3355443, Status: models.DOCUMENT_STATUS_PROCESSING, Date: "2025-03-10", Tags: []string{"audit", "Q4"}, Description: "Audit interne du quatrième trimestre 2025", FileName: "audit-q4-2025.xlsx", UploadedBy: adminID, CreatedAt: daysAgo(10), UpdatedAt: daysAgo(3)},
		{ID: uuid.NewString(), Title: "Contrat de travail - M. Leroy", Category: "Ressources Humaines", Type: "DOCX", Size: "520 KB", SizeBytes: 532480, Status: models.DOCUMENT_STATUS_ARCHIVED, Date: "2025-02-01", Tags: []string{"embauche", "CDI"}, Description: "Contrat CDI de M. Leroy, poste développeur senior", FileName: "contrat-leroy.docx", UploadedBy: adminID, CreatedAt: daysAgo(40), UpdatedAt: daysAgo(40)},
		{ID: uuid.NewString(), Title: "Budget prévisionnel 2026", Category: "Rapports", Type: "XLSX", Size: "1.8 MB", SizeBytes: 1887436, Status: models.DOCUMENT_STATUS_DRAFT, Date: "2025-03-15", Tags: []string{"budget", "2026", "prévisionnel"}, Description: "Budget prévisionnel pour l'exercice 2026", FileName: "budget-2026.xlsx", UploadedBy: adminID, CreatedAt: daysAgo(5), UpdatedAt: daysAgo(1)},
		{ID: uuid.NewString(), Title: "Facture fournisseur #F-2025-112", Category: "Factures", Type: "PDF", Size: "98 KB", SizeBytes: 100352, Status: models.DOCUMENT_STATUS_ARCHIVED, Date: "2025-02-28", Tags: []string{"fournisseur", "achat"}, Description: "Facture du fournisseur principal pour le matériel informatique", FileName: "facture-f-2025-112.pdf", UploadedBy: adminID, CreatedAt: daysAgo(25), UpdatedAt: daysAgo(25)},
		{ID: uuid.NewString(), Title: "Procès-verbal AG 2025", Category: "Juridique", Type: "PDF", Size: "450 KB", SizeBytes: 460800, Status: models.DOCUMENT_STATUS_ARCHIVED, Date: "2025-01-20", Tags: []string{"AG", "procès-verbal"}, Description: "Procès-verbal de l'assemblée générale annuelle 2025", FileName: "pv-ag-2025.pdf", UploadedBy: adminID, CreatedAt: daysAgo(50), UpdatedAt: daysAgo(50)},
		{ID: uuid.NewString(), Title: "Plan de formation 2025", Category: "Ressources Humaines", Type: "PPTX", Size: "5.6 MB", SizeBytes: 5872025, Status: models.DOCUMENT_STATUS_PROCESSING, Date: "2025-03-05", Tags: []string{"formation", "compétences"}, Description: "Plan de formation annuel pour tous les collaborateurs", FileName: "plan-formation-2025.pptx", UploadedBy: adminID, CreatedAt: daysAgo(12), UpdatedAt: daysAgo(2)},
		{ID: uuid.NewString(), Title: "Rapport mensuel - Février 2025", Category: "Rapports", Type: "PDF", Size: "1.2 MB", SizeBytes: 1258291, Status: models.DOCUMENT_STATUS_ARCHIVED, Date: "2025-03-01", Tags: []string{"mensuel", "février"}, Description: "Rapport d'activité mensuel de février 2025", FileName: "rapport-mensuel-fev-2025.pdf", UploadedBy: adminID, CreatedAt: daysAgo(18), UpdatedAt: daysAgo(18)},
		{ID: uuid.NewString(), Title: "Contrat bail commercial", Category: "Contrats", Type: "PDF", Size: "2.1 MB", SizeBytes: 2202009, Status: models.DOCUMENT_STATUS_ARCHIVED, Date: "2024-12-01", Tags: []string{"bail", "immobilier"}, Description: "Contrat de bail des locaux commerciaux", FileName: "bail-commercial-2024.pdf", UploadedBy: adminID, CreatedAt: daysAgo(80), UpdatedAt: daysAgo(80)},
	}
}

func defaultActivities(adminID string) []models.Activity {
	return []models.Activity{
		{ID: uuid.NewString(), UserID: adminID, Action: "Connexion", Target: "Session démarrée", TargetType: models.TARGET_TYPE_USER, CreatedAt: hoursAgo(1)},
		{ID: uuid.NewString(), UserID: adminID, Action: "Document archivé", Target: "Rapport annuel 2025", TargetType: models.TARGET_TYPE_DOCUMENT, CreatedAt: hoursAgo(2)},
		{ID: uuid.NewString(), UserID: adminID, Action: "Document importé", Target: "Contrat de prestation N°4521", TargetType: models.TARGET_TYPE_DOCUMENT, CreatedAt: hoursAgo(5)},
		{ID: uuid.NewString(), UserID: adminID, Action: "Catégorie modifiée", Target: "Rapports", TargetType: models.TARGET_TYPE_CATEGORY, CreatedAt: daysAgo(1)},
		{ID: uuid.NewString(), UserID: adminID, Action: "Paramètres mis à jour", Target: "Notifications", TargetType: models.TARGET_TYPE_SETTINGS, CreatedAt: daysAgo(3)},
		{ID: uuid.NewString(), UserID: adminID, Action: "Document partagé", Target: "Audit interne Q4 2025", TargetType: models.TARGET_TYPE_DOCUMENT, CreatedAt: daysAgo(7)},
		{ID: uuid.NewString(), UserID: adminID, Action: "Document importé", Target: "Plan de formation 2025", TargetType: models.TARGET_TYPE_DOCUMENT, CreatedAt: daysAgo(12)},
		{ID: uuid.NewString(), UserID: adminID, Action: "Document archivé", Target: "Facture #2025-0892", TargetType: models.TARGET_TYPE_DOCUMENT, CreatedAt: daysAgo(15)},
	}
}

func defaultNotifications(adminID string) []models.Notification {
	return []models.Notification{
		{ID: uuid.NewString(), UserID: adminID, Title: "Document archivé", Message: "Le document 'Rapport annuel 2025' a été archivé avec succès.", Read: false, CreatedAt: hoursAgo(2)},
		{ID: uuid.NewString(), UserID: adminID, Title: "Nouveau document", Message: "Un nouveau document a été importé: Contrat de prestation N°4521", Read: false, CreatedAt: hoursAgo(5)},
		{ID: uuid.NewString(), UserID: adminID, Title: "Stockage", Message: "Vous utilisez 20.8 MB sur 50 GB de stockage.", Read: false, CreatedAt: daysAgo(1)},
		{ID: uuid.NewString(), UserID: adminID, Title: "Mise à jour système", Message: "La plateforme a été mise à jour vers la version 2.1.0", Read: true, CreatedAt: daysAgo(3)},
		{ID: uuid.NewString(), UserID: adminID, Title: "Rappel", Message: "3 documents sont en attente de traitement.", Read: true, CreatedAt: daysAgo(5)},
	}
}
