package services

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"conforma_app_echo/internal/models"
)

type seedControl struct {
	Code     string
	Title    string
	Category string
	Guidance string
}

type seedFramework struct {
	Code        string
	Name        string
	Version     string
	Description string
	Controls    []seedControl
}

var seedFrameworks = []seedFramework{
	{
		Code:        "iso-27001",
		Name:        "ISO/IEC 27001",
		Version:     "2022",
		Description: "Information security management system requirements.",
		Controls: []seedControl{
			{"A.5.1", "Policies for information security", "Organizational",
				"## Objective\nDefine, approve and publish an **information security policy** and topic-specific policies.\n\n- Review at planned intervals\n- Communicate to all personnel"},
			{"A.5.9", "Inventory of information and other associated assets", "Organizational",
				"Maintain an inventory of information assets, including *owners* for each asset."},
			{"A.8.2", "Privileged access rights", "Technological",
				"Restrict and manage the allocation of privileged access rights via `least privilege`."},
			{"A.8.24", "Use of cryptography", "Technological",
				"Define rules for effective use of cryptography, **including key management**."},
		},
	},
	{
		Code:        "iso-42001",
		Name:        "ISO/IEC 42001",
		Version:     "2023",
		Description: "Artificial intelligence management system requirements.",
		Controls: []seedControl{
			{"A.2.2", "AI policy", "Policies",
				"Document a policy for the development or use of **AI systems**."},
			{"A.5.2", "AI system impact assessment", "Impact assessment",
				"Establish a process to assess potential consequences of AI systems:\n\n- for individuals\n- for groups\n- for society"},
			{"A.6.2.4", "AI system verification and validation", "AI system life cycle",
				"Define and document verification and validation measures, including *evaluation benchmarks*."},
		},
	},
	{
		Code:        "nist-ai-rmf",
		Name:        "NIST AI RMF",
		Version:     "1.0",
		Description: "Framework for managing risks of artificial intelligence systems.",
		Controls: []seedControl{
			{"GOVERN-1.1", "Legal and regulatory requirements", "Govern",
				"Legal and regulatory requirements involving AI are understood, managed, and documented."},
			{"MAP-1.1", "Intended purposes and context", "Map",
				"Intended purposes and potential impacts of the AI system are understood and documented."},
			{"MEASURE-2.5", "AI system performance", "Measure",
				"The AI system is evaluated regularly for *safety risks*, and results are documented. See [NIST AI RMF](https://www.nist.gov/itl/ai-risk-management-framework)."},
			{"MANAGE-1.1", "Risk treatment", "Manage",
				"Determination is made whether the AI system achieves its intended purposes."},
		},
	},
}

// SeedFrameworks inserts the framework catalogs and an empty assessment per
// control. Idempotent: frameworks already present are left untouched.
func SeedFrameworks(db *gorm.DB) error {
	for _, sf := range seedFrameworks {
		var existing models.Framework
		err := db.Where("code = ?", sf.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		fw := models.Framework{
			Code:        sf.Code,
			Name:        sf.Name,
			Version:     sf.Version,
			Description: sf.Description,
		}
		if err := db.Create(&fw).Error; err != nil {
			return err
		}

		for _, sc := range sf.Controls {
			control := models.Control{
				FrameworkID: fw.ID,
				Code:        sc.Code,
				Title:       sc.Title,
				Category:    sc.Category,
				Guidance:    sc.Guidance,
			}
			if err := db.Create(&control).Error; err != nil {
				return err
			}

			assessment := models.Assessment{
				FrameworkID: fw.ID,
				ControlID:   control.ID,
				Status:      models.AssessmentStatusNotAssessed,
				Severity:    models.RiskSeverityLow,
				PublicToken: uuid.New().String(),
			}
			if err := db.Create(&assessment).Error; err != nil {
				return err
			}
		}

		log.Printf("Seeded framework %s with %d controls", sf.Name, len(sf.Controls))
	}

	return nil
}
