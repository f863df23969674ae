package artifacts

import (
	"fmt"
	"time"

	"github.com/agentic-procure/rfp-service/internal/models"

	"github.com/google/uuid"
)

// GenerateComplianceMatrix builds the compliance requirements matrix for an RFP.
// Product categories default to medical_device when none are supplied.
func GenerateComplianceMatrix(rfpID string, product models.ProductData, _ models.RequirementData, now time.Time) models.ComplianceMatrix {
	categories := product.Categories
	if len(categories) == 0 {
		categories = []string{"medical_device"}
	}
	return models.ComplianceMatrix{
		ID:                fmt.Sprintf("compliance-%s", uuid.New().String()),
		RFPID:             rfpID,
		ProductCategories: categories,
		Requirements: []models.ComplianceRequirementItem{
			{
				ID:          "req-001",
				Standard:    "ISO 13485",
				Requirement: "Quality Management System for Medical Devices",
				Category:    "iso",
				Criticality: "mandatory",
				Evidence:    "Valid ISO 13485 certificate and quality manual",
				Status:      "pending",
			},
			{
				ID:          "req-002",
				Standard:    "FDA 21 CFR Part 820",
				Requirement: "Quality System Regulation",
				Category:    "fda",
				Criticality: "mandatory",
				Evidence:    "FDA registration and 510(k) clearance (if applicable)",
				Status:      "pending",
			},
			{
				ID:          "req-003",
				Standard:    "IEC 62304",
				Requirement: "Medical Device Software Life Cycle Processes",
				Category:    "other",
				Criticality: "mandatory",
				Evidence:    "Software development process documentation",
				Status:      "pending",
			},
		},
		GeneratedAt: now,
		AIGenerated: true,
	}
}

// GenerateRegulatoryChecklist builds the regulatory checklist for an RFP.
func GenerateRegulatoryChecklist(rfpID string, _ models.ProductData, _ models.RequirementData, now time.Time) models.RegulatoryChecklist {
	certDeadline := now.Add(60 * 24 * time.Hour)
	return models.RegulatoryChecklist{
		ID:          fmt.Sprintf("regulatory-%s", uuid.New().String()),
		RFPID:       rfpID,
		Region:      "us",
		ProductType: "device",
		Items: []models.RegulatoryChecklistItem{
			{
				ID:          "check-001",
				Category:    "certification",
				Requirement: "FDA 510(k) Clearance",
				Applicable:  true,
				Completed:   false,
				Deadline:    &certDeadline,
			},
			{
				ID:          "check-002",
				Category:    "certification",
				Requirement: "ISO 13485 Certification",
				Applicable:  true,
				Completed:   false,
				Deadline:    &certDeadline,
			},
			{
				ID:          "check-003",
				Category:    "testing",
				Requirement: "Biocompatibility Testing (ISO 10993)",
				Applicable:  true,
				Completed:   false,
			},
		},
		GeneratedAt: now,
		AIGenerated: true,
	}
}

// GenerateProductSpecification builds the product specification sheet for an RFP.
// Product name and category fall back to defaults when absent.
func GenerateProductSpecification(rfpID string, product models.ProductData, _ models.RequirementData, now time.Time) models.ProductSpecification {
	productName := product.Name
	if productName == "" {
		productName = "Medical Device"
	}
	category := product.Category
	if category == "" {
		category = "software"
	}
	return models.ProductSpecification{
		ID:          fmt.Sprintf("product-spec-%s", uuid.New().String()),
		RFPID:       rfpID,
		ProductName: productName,
		Category:    category,
		Specifications: map[string]string{
			"Operating Temperature": "10°C to 40°C",
			"Storage Temperature":   "-10°C to 60°C",
			"Humidity":              "15% to 85% RH non-condensing",
			"Power Requirements":    "100-240V AC, 50/60Hz",
			"Network Connectivity":  "Ethernet, Wi-Fi 802.11ac",
		},
		PerformanceRequirements: []string{
			"Response time < 2 seconds for critical functions",
			"Availability 99.9% uptime",
			"Data backup and recovery capabilities",
			"User authentication and access control",
		},
		MaterialRequirements: []string{
			"Biocompatible materials for patient contact surfaces",
			"Flame retardant plastics",
			"Corrosion resistant metals",
		},
		EnvironmentalConditions: []string{
			"Hospital/clinical environment usage",
			"Electromagnetic compatibility (EMC)",
			"Electrical safety (IEC 60601-1)",
		},
		PackagingRequirements: []string{
			"Sterile barrier packaging",
			"Protective packaging for shipping",
			"Clear labeling and instructions",
		},
		QualityStandards: []string{
			"ISO 13485",
			"IEC 62304",
			"ISO 14971 (Risk Management)",
		},
		GeneratedAt: now,
		AIGenerated: true,
	}
}

// GenerateQualityRequirements builds the quality requirements document for an RFP.
func GenerateQualityRequirements(rfpID string, _ models.ProductData, _ models.RequirementData, now time.Time) models.QualityRequirement {
	return models.QualityRequirement{
		ID:    fmt.Sprintf("quality-%s", uuid.New().String()),
		RFPID: rfpID,
		ControlProcesses: []string{
			"Design Controls (21 CFR 820.30)",
			"Document and Data Controls",
			"Purchasing Controls",
			"Production and Process Controls",
			"Corrective and Preventive Action (CAPA)",
		},
		TestingProtocols: []string{
			"Design Verification and Validation",
			"Software Testing (unit, integration, system)",
			"Cybersecurity Testing",
			"Usability Testing",
			"Performance Testing",
		},
		InspectionProcedures: []string{
			"Incoming Inspection",
			"In-Process Inspection",
			"Final Inspection",
			"Statistical Process Control",
			"Acceptance Criteria Definition",
		},
		TraceabilityRequirements: []string{
			"Unique Device Identification (UDI)",
			"Component Traceability",
			"Manufacturing Records",
			"Distribution Records",
			"Post-Market Surveillance",
		},
		DocumentationRequirements: []string{
			"Device Master Record (DMR)",
			"Device History Record (DHR)",
			"Quality Manual",
			"Standard Operating Procedures (SOPs)",
			"Risk Management File",
		},
		QualificationRequirements: []string{
			"Installation Qualification (IQ)",
			"Operational Qualification (OQ)",
			"Performance Qualification (PQ)",
			"Software Validation",
			"Supplier Qualification",
		},
		GeneratedAt: now,
		AIGenerated: true,
	}
}

// GenerateSupplierEvaluationMatrix builds the supplier evaluation matrix for
// an RFP. The four category weights sum to 100 by convention.
func GenerateSupplierEvaluationMatrix(rfpID string, _ models.ProductData, _ models.RequirementData, now time.Time) models.SupplierEvaluationMatrix {
	return models.SupplierEvaluationMatrix{
		ID:    fmt.Sprintf("evaluation-%s", uuid.New().String()),
		RFPID: rfpID,
		EvaluationCriteria: []models.EvaluationCategory{
			{
				Category: "Technical Capability",
				Weight:   40,
				Criteria: []models.EvaluationCriterion{
					{
						Name:        "Technical Expertise",
						Description: "Demonstrated experience in medical device development",
						MaxScore:    100,
						Required:    true,
					},
					{
						Name:        "Innovation Capability",
						Description: "Ability to provide innovative solutions",
						MaxScore:    100,
						Required:    false,
					},
				},
			},
			{
				Category: "Compliance & Quality",
				Weight:   35,
				Criteria: []models.EvaluationCriterion{
					{
						Name:        "Regulatory Compliance",
						Description: "Current certifications and compliance status",
						MaxScore:    100,
						Required:    true,
					},
					{
						Name:        "Quality System",
						Description: "Quality management system maturity",
						MaxScore:    100,
						Required:    true,
					},
				},
			},
			{
				Category: "Commercial",
				Weight:   15,
				Criteria: []models.EvaluationCriterion{
					{
						Name:        "Cost Competitiveness",
						Description: "Total cost of ownership",
						MaxScore:    100,
						Required:    true,
					},
					{
						Name:        "Payment Terms",
						Description: "Favorable payment and contract terms",
						MaxScore:    100,
						Required:    false,
					},
				},
			},
			{
				Category: "Risk Assessment",
				Weight:   10,
				Criteria: []models.EvaluationCriterion{
					{
						Name:        "Financial Stability",
						Description: "Financial health and stability",
						MaxScore:    100,
						Required:    true,
					},
					{
						Name:        "Business Continuity",
						Description: "Business continuity planning",
						MaxScore:    100,
						Required:    false,
					},
				},
			},
		},
		TechnicalWeighting:  40,
		ComplianceWeighting: 35,
		CommercialWeighting: 15,
		RiskWeighting:       10,
		MinimumScores: models.MinimumScores{
			Technical:  70,
			Compliance: 80,
			Overall:    75,
		},
		GeneratedAt: now,
		AIGenerated: true,
	}
}

// GenerateResponseTemplate builds the response template document for an RFP.
func GenerateResponseTemplate(rfpID string, _ models.ProductData, _ models.RequirementData, now time.Time) models.ResponseTemplate {
	return models.ResponseTemplate{
		ID:    fmt.Sprintf("template-%s", uuid.New().String()),
		RFPID: rfpID,
		Sections: []models.TemplateSection{
			{
				Title:       "Executive Summary",
				Description: "High-level overview of your solution and company",
				Required:    true,
				Format:      "text",
				MaxLength:   1000,
			},
			{
				Title:       "Technical Approach",
				Description: "Detailed technical solution and methodology",
				Required:    true,
				Format:      "text",
				Examples:    []string{"Architecture diagrams", "Technology stack", "Development methodology"},
			},
			{
				Title:       "Compliance Documentation",
				Description: "Certifications and compliance evidence",
				Required:    true,
				Format:      "document",
				Examples:    []string{"ISO 13485 certificate", "FDA registration", "Quality manual"},
			},
			{
				Title:       "Commercial Proposal",
				Description: "Pricing, timeline, and commercial terms",
				Required:    true,
				Format:      "table",
			},
			{
				Title:       "Quality Assurance",
				Description: "Quality processes and testing approach",
				Required:    true,
				Format:      "text",
			},
			{
				Title:       "Project Timeline",
				Description: "Detailed project schedule and milestones",
				Required:    true,
				Format:      "table",
			},
		},
		SubmissionGuidelines: []string{
			"Submit all documents in PDF format",
			"Include signed non-disclosure agreement",
			"Provide at least 3 relevant references",
			"Submit by the specified deadline",
			"Follow the exact section structure provided",
		},
		RequiredDocuments: []string{
			"Company profile and capabilities",
			"Relevant certifications and licenses",
			"Financial statements (last 2 years)",
			"Insurance certificates",
			"Reference letters from previous clients",
		},
		EvaluationCriteria: []string{
			"Technical merit (40%)",
			"Compliance and quality (35%)",
			"Commercial competitiveness (15%)",
			"Risk assessment (10%)",
		},
		GeneratedAt: now,
		AIGenerated: true,
	}
}
