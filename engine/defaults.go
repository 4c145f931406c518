package engine

import "vulnguard/models"

// DefaultRefData builds the compiled-in reference data store: control
// catalogs for NIST 800-53, ISO 27001, HIPAA and FedRAMP, the finding-type
// mapping tables, the scoring weights and the SLA table. Deployments can
// override any of it through LoadRefDataDir.
func DefaultRefData() *RefData {
	rd := &RefData{
		Frameworks: []string{
			models.FrameworkNIST80053,
			models.FrameworkISO27001,
			models.FrameworkHIPAA,
			models.FrameworkFedRAMP,
		},
		Controls: map[string][]models.ComplianceControl{
			models.FrameworkNIST80053: nist80053Controls(),
			models.FrameworkISO27001:  iso27001Controls(),
			models.FrameworkHIPAA:     hipaaControls(),
			models.FrameworkFedRAMP:   fedrampControls(),
		},
		Mappings: defaultMappings(),
		Weights:  DefaultWeights(),
		SLATable: DefaultSLATable(),
	}
	rd.normalize()
	return rd
}

// DefaultWeights returns the standard factor budgets. The theoretical
// maximum (30+20+15+10+10+10+5 = 100) already hits the ceiling, so stacked
// signals keep a truly dangerous finding pinned at 100 after clamping.
func DefaultWeights() ScoreWeights {
	return ScoreWeights{
		CVSSBudget:        30,
		EPSSBudget:        20,
		KEVBonus:          15,
		ExploitBonus:      10,
		CriticalityStep:   2,
		EnvironmentBudget: 10,
		CrossHostCap:      5,
		EnvMultipliers: map[string]float64{
			models.EnvProduction:  1.0,
			models.EnvStaging:     0.6,
			models.EnvDevelopment: 0.3,
		},
		DefaultEnvMultiplier: 0.5,
	}
}

// DefaultSLATable returns the score-to-tier thresholds. Bounds are
// inclusive on the floor: a score of exactly 85 is critical.
func DefaultSLATable() []SLAThreshold {
	return []SLAThreshold{
		{MinScore: 85, Tier: models.TierCritical, SLAHours: 24},
		{MinScore: 70, Tier: models.TierHigh, SLAHours: 7 * 24},
		{MinScore: 40, Tier: models.TierMedium, SLAHours: 30 * 24},
		{MinScore: 0, Tier: models.TierLow, SLAHours: 90 * 24},
	}
}

func nist80053Controls() []models.ComplianceControl {
	return []models.ComplianceControl{
		{
			Framework:   models.FrameworkNIST80053,
			ControlID:   "AC-2",
			Title:       "Account Management",
			Family:      "Access Control",
			Description: "Manage system accounts, group memberships, privileges, workflow, notifications, deactivations, and authorizations.",
			Guidance:    "Establish procedures for account management including automated mechanisms where feasible.",
			AssessmentProcedures: []string{
				"Examine account management policy and procedures",
				"Interview personnel responsible for account management",
				"Test account management automated mechanisms",
			},
			RelatedControls: []string{"AC-3", "AC-5", "AC-6", "IA-2", "IA-4", "IA-5", "IA-8"},
			Priority:        "high",
		},
		{
			Framework:   models.FrameworkNIST80053,
			ControlID:   "AC-3",
			Title:       "Access Enforcement",
			Family:      "Access Control",
			Description: "Enforce approved authorizations for logical access to information and system resources.",
			Guidance:    "Use access control mechanisms to enforce authorized access determinations.",
			AssessmentProcedures: []string{
				"Examine access control policy and procedures",
				"Examine system configuration settings and associated documentation",
				"Test access enforcement mechanisms",
			},
			RelatedControls: []string{"AC-2", "AC-4", "AC-5", "AC-6", "AU-9", "CM-5"},
			Priority:        "high",
		},
		{
			Framework:   models.FrameworkNIST80053,
			ControlID:   "AC-6",
			Title:       "Least Privilege",
			Family:      "Access Control",
			Description: "Employ the principle of least privilege, allowing only authorized access for users which are necessary to accomplish assigned tasks.",
			Guidance:    "Define user privileges and implement mechanisms to enforce least privilege access.",
			AssessmentProcedures: []string{
				"Examine access control policy and least privilege procedures",
				"Interview personnel about privilege assignment processes",
				"Test privilege enforcement mechanisms",
			},
			RelatedControls: []string{"AC-2", "AC-3", "AC-5", "CM-5", "CM-11"},
			Priority:        "high",
		},
		{
			Framework:   models.FrameworkNIST80053,
			ControlID:   "SI-2",
			Title:       "Flaw Remediation",
			Family:      "System and Information Integrity",
			Description: "Identify, report, and correct system flaws including the installation of security-relevant software and firmware updates.",
			Guidance:    "Establish procedures for flaw identification, reporting, and remediation including testing of updates.",
			AssessmentProcedures: []string{
				"Examine flaw remediation policy and procedures",
				"Examine system documentation for flaw remediation records",
				"Test flaw remediation process and mechanisms",
			},
			RelatedControls: []string{"CM-3", "CM-5", "CM-8", "SI-3", "SI-5", "SI-11"},
			Priority:        "critical",
		},
		{
			Framework:   models.FrameworkNIST80053,
			ControlID:   "SI-4",
			Title:       "System Monitoring",
			Family:      "System and Information Integrity",
			Description: "Monitor the system to detect attacks and indicators of potential attacks, unauthorized local connections.",
			Guidance:    "Deploy monitoring tools and establish procedures for continuous system monitoring.",
			AssessmentProcedures: []string{
				"Examine system monitoring policy and procedures",
				"Examine system monitoring tools and associated documentation",
				"Test system monitoring capabilities and alerting mechanisms",
			},
			RelatedControls: []string{"AU-2", "AU-6", "AU-12", "CA-7", "IR-4", "SI-3"},
			Priority:        "high",
		},
	}
}

func iso27001Controls() []models.ComplianceControl {
	return []models.ComplianceControl{
		{
			Framework:   models.FrameworkISO27001,
			ControlID:   "A.8.2",
			Title:       "Privileged access rights",
			Family:      "Access Management",
			Description: "The allocation and use of privileged access rights shall be restricted and managed.",
			Guidance:    "Implement formal procedures for managing privileged access including regular reviews.",
			AssessmentProcedures: []string{
				"Review privileged access management procedures",
				"Examine privileged account inventories and access reviews",
				"Test privileged access controls and monitoring",
			},
			RelatedControls: []string{"A.8.1", "A.8.3", "A.9.1", "A.9.2"},
			Priority:        "high",
		},
		{
			Framework:   models.FrameworkISO27001,
			ControlID:   "A.8.8",
			Title:       "Management of privileged access rights",
			Family:      "Access Management",
			Description: "The allocation and use of privileged access rights shall be restricted and managed.",
			Guidance:    "Establish procedures for granting, monitoring, and reviewing privileged access.",
			AssessmentProcedures: []string{
				"Review privileged access policies and procedures",
				"Examine privileged access logs and reviews",
				"Test privileged access management controls",
			},
			RelatedControls: []string{"A.8.2", "A.8.3", "A.9.2"},
			Priority:        "high",
		},
		{
			Framework:   models.FrameworkISO27001,
			ControlID:   "A.12.6",
			Title:       "Management of technical vulnerabilities",
			Family:      "Operations Security",
			Description: "Information about technical vulnerabilities of information systems being used shall be obtained in a timely fashion.",
			Guidance:    "Establish vulnerability management processes including scanning, assessment, and remediation.",
			AssessmentProcedures: []string{
				"Review vulnerability management policy and procedures",
				"Examine vulnerability scan reports and remediation records",
				"Test vulnerability management process effectiveness",
			},
			RelatedControls: []string{"A.12.1", "A.12.2", "A.14.2", "A.12.5"},
			Priority:        "critical",
		},
	}
}

func hipaaControls() []models.ComplianceControl {
	return []models.ComplianceControl{
		{
			Framework:   models.FrameworkHIPAA,
			ControlID:   "164.308(a)(1)",
			Title:       "Security Officer",
			Family:      "Administrative Safeguards",
			Description: "Assign security responsibilities to a security officer.",
			Guidance:    "Designate a security officer responsible for developing and implementing security policies.",
			AssessmentProcedures: []string{
				"Verify security officer designation documentation",
				"Review security officer responsibilities and qualifications",
				"Examine security program oversight activities",
			},
			RelatedControls: []string{"164.308(a)(2)", "164.308(a)(3)", "164.308(a)(4)"},
			Priority:        "high",
		},
		{
			Framework:   models.FrameworkHIPAA,
			ControlID:   "164.308(a)(5)",
			Title:       "Information System Activity Review",
			Family:      "Administrative Safeguards",
			Description: "Implement procedures to regularly review records of information system activity.",
			Guidance:    "Establish regular review procedures for system logs, access reports, and security incidents.",
			AssessmentProcedures: []string{
				"Examine information system activity review procedures",
				"Review system activity review records and reports",
				"Test information system monitoring and review processes",
			},
			RelatedControls: []string{"164.312(b)", "164.312(d)", "164.308(a)(1)"},
			Priority:        "high",
		},
		{
			Framework:   models.FrameworkHIPAA,
			ControlID:   "164.312(a)(2)",
			Title:       "Assigned Security Responsibility",
			Family:      "Technical Safeguards",
			Description: "Assign a unique name and/or number for identifying and tracking user identity.",
			Guidance:    "Implement unique user identification and authentication mechanisms.",
			AssessmentProcedures: []string{
				"Examine user identification and authentication procedures",
				"Review user account management processes",
				"Test user identification and tracking mechanisms",
			},
			RelatedControls: []string{"164.312(a)(1)", "164.312(d)", "164.308(a)(3)"},
			Priority:        "high",
		},
	}
}

func fedrampControls() []models.ComplianceControl {
	return []models.ComplianceControl{
		{
			Framework:   models.FrameworkFedRAMP,
			ControlID:   "AC-2",
			Title:       "Account Management",
			Family:      "Access Control",
			Description: "Account management for FedRAMP systems with enhanced monitoring requirements.",
			Guidance:    "Implement account management with automated tools and continuous monitoring for federal systems.",
			AssessmentProcedures: []string{
				"Examine account management procedures specific to federal requirements",
				"Review account monitoring and reporting mechanisms",
				"Test automated account management controls",
			},
			RelatedControls: []string{"AC-3", "AC-6", "IA-2", "IA-4"},
			Priority:        "critical",
		},
		{
			Framework:   models.FrameworkFedRAMP,
			ControlID:   "SI-2",
			Title:       "Flaw Remediation",
			Family:      "System and Information Integrity",
			Description: "Enhanced flaw remediation requirements for federal cloud systems.",
			Guidance:    "Implement accelerated patch management with mandatory timelines for federal systems.",
			AssessmentProcedures: []string{
				"Examine flaw remediation procedures and timelines",
				"Review patch management automation and reporting",
				"Test flaw remediation compliance with federal timelines",
			},
			RelatedControls: []string{"CM-3", "SI-3", "SI-4"},
			Priority:        "critical",
		},
	}
}

func defaultMappings() map[string]map[string][]ControlRelevance {
	return map[string]map[string][]ControlRelevance{
		models.FindingTypeWeakAuthentication: {
			models.FrameworkNIST80053: {
				{ControlID: "AC-2", Relevance: 0.9},
				{ControlID: "AC-3", Relevance: 0.8},
				{ControlID: "IA-2", Relevance: 0.95},
				{ControlID: "IA-5", Relevance: 0.9},
			},
			models.FrameworkISO27001: {
				{ControlID: "A.8.2", Relevance: 0.9},
				{ControlID: "A.9.1", Relevance: 0.85},
				{ControlID: "A.9.2", Relevance: 0.9},
			},
			models.FrameworkHIPAA: {
				{ControlID: "164.312(a)(2)", Relevance: 0.95},
				{ControlID: "164.308(a)(3)", Relevance: 0.8},
			},
			models.FrameworkFedRAMP: {
				{ControlID: "AC-2", Relevance: 0.95},
				{ControlID: "IA-2", Relevance: 0.9},
			},
		},
		models.FindingTypeUnpatchedVulnerability: {
			models.FrameworkNIST80053: {
				{ControlID: "SI-2", Relevance: 0.95},
				{ControlID: "CM-3", Relevance: 0.8},
				{ControlID: "RA-5", Relevance: 0.9},
			},
			models.FrameworkISO27001: {
				{ControlID: "A.12.6", Relevance: 0.95},
				{ControlID: "A.14.2", Relevance: 0.85},
			},
			models.FrameworkFedRAMP: {
				{ControlID: "SI-2", Relevance: 0.98},
				{ControlID: "RA-5", Relevance: 0.9},
			},
		},
		models.FindingTypeMisconfiguration: {
			models.FrameworkNIST80053: {
				{ControlID: "CM-2", Relevance: 0.9},
				{ControlID: "CM-6", Relevance: 0.95},
				{ControlID: "SI-4", Relevance: 0.8},
			},
			models.FrameworkISO27001: {
				{ControlID: "A.12.1", Relevance: 0.9},
				{ControlID: "A.12.5", Relevance: 0.85},
			},
			models.FrameworkHIPAA: {
				{ControlID: "164.312(a)(1)", Relevance: 0.8},
			},
		},
		models.FindingTypeExcessivePrivileges: {
			models.FrameworkNIST80053: {
				{ControlID: "AC-6", Relevance: 0.95},
				{ControlID: "AC-2", Relevance: 0.8},
			},
			models.FrameworkISO27001: {
				{ControlID: "A.8.2", Relevance: 0.95},
				{ControlID: "A.8.8", Relevance: 0.9},
			},
			models.FrameworkHIPAA: {
				{ControlID: "164.308(a)(3)", Relevance: 0.9},
			},
		},
		models.FindingTypeInsufficientLogging: {
			models.FrameworkNIST80053: {
				{ControlID: "AU-2", Relevance: 0.9},
				{ControlID: "AU-6", Relevance: 0.95},
				{ControlID: "SI-4", Relevance: 0.9},
			},
			models.FrameworkISO27001: {
				{ControlID: "A.12.4", Relevance: 0.9},
			},
			models.FrameworkHIPAA: {
				{ControlID: "164.308(a)(5)", Relevance: 0.95},
				{ControlID: "164.312(b)", Relevance: 0.8},
			},
		},
	}
}
