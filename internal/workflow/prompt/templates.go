package prompt

import "fmt"

// Token budgets and prompt wording follow the product's established
// template set; changing either changes model output quality, so edits
// here should be deliberate.

func allTemplates() []*Template {
	return []*Template{
		userPersonas(),
		userStories(),
		userJourney(),
		mvpFeatures(),
		successMetrics(),
		navArchitecture(),
		techJustifications(),
		databaseArchitecture(),
		securityCompliance(),
		performanceTargets(),
		competitivePositioning(),
		designSystem(),
		uxGuidelines(),
		devPhases(),
		implementationRoadmap(),
		testingStrategy(),
		deploymentStrategy(),
		documentationPlan(),
		budgetEstimation(),
		validateTechStack(),
		validateTimeline(),
		validateBudget(),
		validateDependencies(),
	}
}

func userPersonas() *Template {
	return &Template{
		ID:           "generate-user-personas",
		SystemPrompt: "You are a UX researcher specializing in user persona development.",
		MaxTokens:    3000,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate detailed user personas for "%s" (%s). Demographics: %s.
Return JSON: {"personas":[{"demographic":"...","role":"...","painPoints":["..."],"goals":["..."],"successMetrics":["..."]}]}
Generate 3-5 personas. Be specific and actionable.`,
				str(in, "appName"), str(in, "appIdea"), joinList(in, "demographics"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "personas", SectionPath: "primaryUserPersonas", Kind: KindArray, Mode: ModeReplace},
		},
	}
}

func userStories() *Template {
	return &Template{
		ID:           "generate-user-stories",
		SystemPrompt: "You are a product manager writing user stories.",
		MaxTokens:    3000,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate user stories for "%s" (%s). Platform: %s. Audience: %s.
Return JSON: {"userStories":[{"asA":"...","iWantTo":"...","soThat":"..."}]}
Generate 8-12 user stories covering core functionality.`,
				str(in, "appName"), str(in, "appIdea"), joinList(in, "platform"), joinList(in, "audience"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "userStories", SectionPath: "userStories", Kind: KindArray, Mode: ModeReplace},
		},
	}
}

func userJourney() *Template {
	return &Template{
		ID:           "generate-user-journey",
		SystemPrompt: "You are a UX designer mapping user journeys.",
		MaxTokens:    3000,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate a user journey for "%s" (%s). Platform: %s.
Return JSON: {"onboardingSteps":[{"step":"...","description":"...","estimatedTime":"..."}],"coreUsageFlow":"...","successMilestones":["..."]}
Include 5 onboarding steps, a detailed core usage flow, and 4-6 success milestones.`,
				str(in, "appName"), str(in, "appIdea"), joinList(in, "platform"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "onboardingSteps", SectionPath: "userJourney.onboardingSteps", Kind: KindArray, Mode: ModeReplace},
			{ResultKey: "coreUsageFlow", SectionPath: "userJourney.coreUsageFlow", Kind: KindString, Mode: ModeReplace},
			{ResultKey: "successMilestones", SectionPath: "userJourney.successMilestones", Kind: KindArray, Mode: ModeReplace},
		},
	}
}

func mvpFeatures() *Template {
	return &Template{
		ID:           "generate-mvp-features",
		SystemPrompt: "You are a product strategist prioritizing MVP features.",
		MaxTokens:    2000,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate MoSCoW prioritized features for "%s" (%s). Platform: %s. Audience: %s.
Return JSON: {"mustHave":["..."],"shouldHave":["..."],"couldHave":["..."],"wontHave":["..."]}
Must Have: 5-8 critical launch features. Should Have: 4-6 important features. Could Have: 3-5 nice-to-haves. Won't Have: 3-4 explicitly excluded.`,
				str(in, "appName"), str(in, "appIdea"), joinList(in, "platform"), joinList(in, "audience"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "mustHave", SectionPath: "featurePriority.mustHave", Kind: KindArray, Mode: ModeReplace},
			{ResultKey: "shouldHave", SectionPath: "featurePriority.shouldHave", Kind: KindArray, Mode: ModeReplace},
			{ResultKey: "couldHave", SectionPath: "featurePriority.couldHave", Kind: KindArray, Mode: ModeReplace},
			{ResultKey: "wontHave", SectionPath: "featurePriority.wontHave", Kind: KindArray, Mode: ModeReplace},
		},
	}
}

func successMetrics() *Template {
	return &Template{
		ID:           "generate-success-metrics",
		SystemPrompt: "You are a growth analyst defining KPIs.",
		MaxTokens:    3000,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate success metrics for "%s" (%s). Audience: %s. Target users: %s.
Return JSON: {"activationMetrics":["..."],"engagementMetrics":["..."],"businessMetrics":["..."],"timeline":{"thirtyDayGoals":"...","ninetyDayGoals":"...","oneYearVision":"..."}}
Include 3-5 metrics per category with specific measurable targets.`,
				str(in, "appName"), str(in, "appIdea"), joinList(in, "audience"), strOr(in, "numberOfUsers", "not specified"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "activationMetrics", SectionPath: "successMetrics.activationMetrics", Kind: KindArray, Mode: ModeReplace},
			{ResultKey: "engagementMetrics", SectionPath: "successMetrics.engagementMetrics", Kind: KindArray, Mode: ModeReplace},
			{ResultKey: "businessMetrics", SectionPath: "successMetrics.businessMetrics", Kind: KindArray, Mode: ModeReplace},
			{ResultKey: "timeline", SectionPath: "successMetrics.timeline", Kind: KindObject, Mode: ModeReplace},
		},
	}
}

func navArchitecture() *Template {
	return &Template{
		ID:           "generate-nav-architecture",
		SystemPrompt: "You are an information architect designing navigation systems.",
		MaxTokens:    2500,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate navigation architecture for "%s". Platform: %s. App structure: %s.
Return JSON: {"primaryNav":["..."],"secondaryNav":["..."],"screenFlowConnections":"..."}
Primary nav: 4-7 main navigation items. Secondary: 3-5 utility items. Flow connections: describe how screens connect.`,
				str(in, "appName"), joinList(in, "platform"), jsonValue(in, "appStructure", "{}"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "primaryNav", SectionPath: "appStructure.primaryNav", Kind: KindArray, Mode: ModeReplace},
			{ResultKey: "secondaryNav", SectionPath: "appStructure.secondaryNav", Kind: KindArray, Mode: ModeReplace},
			{ResultKey: "screenFlowConnections", SectionPath: "appStructure.screenFlowConnections", Kind: KindString, Mode: ModeReplace},
		},
	}
}

func techJustifications() *Template {
	categories := []string{
		"frontend", "backend", "css", "llm", "mcp", "testing",
		"deployment", "reporting", "apis", "localLlm", "evalTools", "additional",
	}
	bindings := make([]SectionBinding, 0, len(categories))
	for _, c := range categories {
		bindings = append(bindings, SectionBinding{
			ResultKey: c, SectionPath: "techJustifications." + c, Kind: KindString, Mode: ModeReplace,
		})
	}
	return &Template{
		ID:           "generate-tech-justifications",
		SystemPrompt: "You are a technical architect justifying technology choices.",
		MaxTokens:    3000,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate technology justifications for "%s". Platform: %s. Users: %s.
Selected stack: %s.
Return JSON with a justification string for each category that has selections: {"frontend":"...","backend":"...","css":"...","llm":"...","mcp":"...","testing":"...","deployment":"...","reporting":"...","apis":"...","localLlm":"...","evalTools":"...","additional":"..."}
Only include categories that have selections. Each justification should be 2-3 sentences explaining why that choice is appropriate.`,
				str(in, "appName"), joinList(in, "platform"), strOr(in, "numberOfUsers", "not specified"),
				jsonValue(in, "selectedTechStack", "{}"))
		},
		Bindings: bindings,
	}
}

func databaseArchitecture() *Template {
	return &Template{
		ID:           "generate-database-architecture",
		SystemPrompt: "You are a database architect designing data models and API specs.",
		MaxTokens:    4000,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate database architecture for "%s" (%s). Platform: %s. Tech: %s.
Return JSON: {"dataModels":[{"entityName":"...","fields":[{"name":"...","type":"string|number|boolean|date|text|json|uuid|email|enum|array","required":true/false}],"relationships":[{"type":"hasMany|hasOne|belongsTo|manyToMany","relatedEntity":"..."}]}],"apiSpec":{"authMethods":["..."],"coreEndpoints":[{"method":"GET|POST|PUT|DELETE","endpoint":"...","description":"..."}],"integrationRequirements":["..."]}}
Generate 4-8 data models with appropriate fields and relationships. Include 10-15 API endpoints.`,
				str(in, "appName"), str(in, "appIdea"), joinList(in, "platform"), jsonValue(in, "techStack", "{}"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "dataModels", SectionPath: "databaseArchitecture.dataModels", Kind: KindArray, Mode: ModeReplace},
			{ResultKey: "apiSpec", SectionPath: "databaseArchitecture.apiSpec", Kind: KindObject, Mode: ModeReplace},
		},
	}
}

func securityCompliance() *Template {
	return &Template{
		ID:           "generate-security-compliance",
		SystemPrompt: "You are a security consultant advising on application security.",
		MaxTokens:    3000,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate security and compliance recommendations for "%s". Audience: %s. Platform: %s.
Return JSON: {"security":{"dataEncryption":["..."],"authMethods":["..."],"accessControl":["..."]},"compliance":{"gdpr":true/false,"soc2":true/false,"hipaa":true/false,"dataResidency":"..."}}
Recommend appropriate security measures and compliance requirements based on the audience and platform.`,
				str(in, "appName"), joinList(in, "audience"), joinList(in, "platform"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "security", SectionPath: "security", Kind: KindObject, Mode: ModeReplace},
			{ResultKey: "compliance", SectionPath: "compliance", Kind: KindObject, Mode: ModeReplace},
		},
	}
}

func performanceTargets() *Template {
	return &Template{
		ID:           "generate-performance-targets",
		SystemPrompt: "You are a performance engineer setting targets.",
		MaxTokens:    2500,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate performance targets for "%s". Platform: %s. Expected users: %s.
Return JSON: {"performanceTargets":{"loadTime":"...","concurrentUsers":"...","dataVolume":"..."},"scalabilityPlan":{"growthProjections":"...","infrastructureScaling":"..."}}
Be specific with numbers and thresholds.`,
				str(in, "appName"), joinList(in, "platform"), strOr(in, "numberOfUsers", "not specified"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "performanceTargets", SectionPath: "performanceTargets", Kind: KindObject, Mode: ModeReplace},
			{ResultKey: "scalabilityPlan", SectionPath: "scalabilityPlan", Kind: KindObject, Mode: ModeReplace},
		},
	}
}

func competitivePositioning() *Template {
	return &Template{
		ID:           "generate-competitive-positioning",
		SystemPrompt: "You are a market strategist analyzing competitive positioning.",
		MaxTokens:    2500,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate competitive positioning for "%s" (%s). Competitors: %s.
Return JSON: {"keyDifferentiators":["..."],"pricingStrategy":"...","marketPositioning":"..."}
Identify 4-6 key differentiators, suggest a pricing strategy, and describe market positioning.`,
				str(in, "appName"), str(in, "appIdea"), jsonValue(in, "competitors", "[]"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "keyDifferentiators", SectionPath: "competitivePositioning.keyDifferentiators", Kind: KindArray, Mode: ModeReplace},
			{ResultKey: "pricingStrategy", SectionPath: "competitivePositioning.pricingStrategy", Kind: KindString, Mode: ModeReplace},
			{ResultKey: "marketPositioning", SectionPath: "competitivePositioning.marketPositioning", Kind: KindString, Mode: ModeReplace},
		},
	}
}

func designSystem() *Template {
	return &Template{
		ID:           "generate-design-system",
		SystemPrompt: "You are a design system architect.",
		MaxTokens:    3000,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate a design system for an app. Colors: %s. Fonts: %s. Platform: %s.
Return JSON: {"typeScale":{"fontSizes":{"xs":"12px","sm":"14px","base":"16px","lg":"18px","xl":"20px","2xl":"24px","3xl":"30px","4xl":"36px","5xl":"48px"},"lineHeights":{"tight":"1.25","normal":"1.5","relaxed":"1.75"},"fontWeights":{"light":"300","normal":"400","medium":"500","semibold":"600","bold":"700"},"usageGuidelines":"..."},"componentSpecs":{"buttonStyles":{"primary":{"bgColor":"...","textColor":"...","borderRadius":"...","padding":"..."},"secondary":{"bgColor":"...","textColor":"...","borderRadius":"...","padding":"..."},"ghost":{"bgColor":"...","textColor":"...","borderRadius":"...","padding":"..."}},"formInputSpecs":{"borderStyle":"...","focusState":"...","errorState":"...","disabledState":"..."},"navComponents":{"headerStyle":"...","sidebarStyle":"...","mobileMenuStyle":"..."},"dataDisplayComponents":{"tableStyle":"...","cardStyle":"...","listStyle":"..."}}}`,
				jsonValue(in, "colors", "{}"), jsonValue(in, "fonts", "{}"), joinList(in, "platform"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "typeScale", SectionPath: "designSystem.typeScale", Kind: KindObject, Mode: ModeReplace},
			{ResultKey: "componentSpecs", SectionPath: "designSystem.componentSpecs", Kind: KindObject, Mode: ModeReplace},
		},
	}
}

func uxGuidelines() *Template {
	return &Template{
		ID:           "generate-ux-guidelines",
		SystemPrompt: "You are a UX designer creating interaction guidelines.",
		MaxTokens:    2500,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate UX guidelines for "%s". Platform: %s. Audience: %s.
Return JSON: {"interactionPatterns":{"clickTargets":"...","animationGuidelines":"...","loadingStates":"...","errorStates":"..."},"accessibility":{"wcagLevel":"AA","screenReaderCompat":true/false,"keyboardNav":true/false},"responsiveDesign":{"breakpoints":{"mobile":{"width":"640px","layout":"..."},"tablet":{"width":"768px","layout":"..."},"desktop":{"width":"1024px","layout":"..."}},"crossPlatform":{"browserCompat":["..."],"mobileVsWeb":"..."}}}`,
				str(in, "appName"), joinList(in, "platform"), joinList(in, "audience"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "interactionPatterns", SectionPath: "uxGuidelines.interactionPatterns", Kind: KindObject, Mode: ModeReplace},
			{ResultKey: "accessibility", SectionPath: "uxGuidelines.accessibility", Kind: KindObject, Mode: ModeReplace},
			{ResultKey: "responsiveDesign", SectionPath: "uxGuidelines.responsiveDesign", Kind: KindObject, Mode: ModeReplace},
		},
	}
}

func devPhases() *Template {
	return &Template{
		ID:           "generate-dev-phases",
		SystemPrompt: "You are a project manager planning development phases.",
		MaxTokens:    3500,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate development phases for "%s". Platform: %s. Tech: %s. Features: %s.
Return JSON: {"phases":[{"phaseName":"...","deliverables":["..."],"dependencies":["..."],"resourceAllocation":"..."}]}
Generate 4-6 phases covering: setup, core features, integrations, testing, deployment, launch.`,
				str(in, "appName"), joinList(in, "platform"), jsonValue(in, "techStack", "{}"), jsonValue(in, "features", "{}"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "phases", SectionPath: "developmentPhases", Kind: KindArray, Mode: ModeReplace},
		},
	}
}

func implementationRoadmap() *Template {
	return &Template{
		ID:           "generate-implementation-roadmap",
		SystemPrompt: "You are a technical program manager creating roadmaps.",
		MaxTokens:    4000,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate implementation roadmap. Phases: %s. Tech: %s. Team size: %s.
Return JSON: {"weeklySchedule":[{"week":"Week 1","tasks":"..."}],"featureOrder":["..."],"testMilestones":["..."],"risks":{"technicalRisks":[{"risk":"...","likelihood":"low|medium|high","impact":"low|medium|high","mitigation":"..."}],"businessRisks":[{"risk":"...","likelihood":"...","impact":"...","mitigation":"..."}],"dependencyManagement":"..."}}
Generate 8-12 weeks, 6-10 feature priorities, 4-6 test milestones, 3-4 risks each.`,
				jsonValue(in, "devPhases", "[]"), jsonValue(in, "techStack", "{}"), strOr(in, "teamSize", "not specified"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "weeklySchedule", SectionPath: "implementationRoadmap.weeklySchedule", Kind: KindArray, Mode: ModeReplace},
			{ResultKey: "featureOrder", SectionPath: "implementationRoadmap.featureOrder", Kind: KindArray, Mode: ModeReplace},
			{ResultKey: "testMilestones", SectionPath: "implementationRoadmap.testMilestones", Kind: KindArray, Mode: ModeReplace},
			{ResultKey: "risks", SectionPath: "implementationRoadmap.risks", Kind: KindObject, Mode: ModeReplace},
		},
	}
}

func testingStrategy() *Template {
	return &Template{
		ID:           "generate-testing-strategy",
		SystemPrompt: "You are a QA architect designing test strategies.",
		MaxTokens:    3000,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate testing strategy for "%s". Platform: %s. Tech: %s.
Return JSON: {"unitTesting":{"target":"...","tools":"..."},"integrationTesting":{"specs":"..."},"e2eTesting":{"criticalPaths":["..."]},"qa":{"codeReviewProcess":"...","performanceTesting":"...","securityTesting":"..."}}`,
				str(in, "appName"), joinList(in, "platform"), jsonValue(in, "techStack", "{}"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "unitTesting", SectionPath: "testingStrategy.unitTesting", Kind: KindObject, Mode: ModeReplace},
			{ResultKey: "integrationTesting", SectionPath: "testingStrategy.integrationTesting", Kind: KindObject, Mode: ModeReplace},
			{ResultKey: "e2eTesting", SectionPath: "testingStrategy.e2eTesting", Kind: KindObject, Mode: ModeReplace},
			{ResultKey: "qa", SectionPath: "testingStrategy.qa", Kind: KindObject, Mode: ModeReplace},
		},
	}
}

func deploymentStrategy() *Template {
	return &Template{
		ID:           "generate-deployment-strategy",
		SystemPrompt: "You are a DevOps engineer planning deployment strategies.",
		MaxTokens:    3500,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate deployment strategy. Platform: %s. Tech: %s. Deployment tools: %s.
Return JSON: {"environments":{"development":{"specs":"..."},"staging":{"specs":"..."},"production":{"specs":"..."}},"cicdPipeline":"...","monitoring":"...","launchPlan":{"softLaunchStrategy":"...","betaTesting":"...","publicLaunchTimeline":"..."}}`,
				joinList(in, "platform"), jsonValue(in, "techStack", "{}"), joinList(in, "deployment"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "environments", SectionPath: "deploymentStrategy.environments", Kind: KindObject, Mode: ModeReplace},
			{ResultKey: "cicdPipeline", SectionPath: "deploymentStrategy.cicdPipeline", Kind: KindString, Mode: ModeReplace},
			{ResultKey: "monitoring", SectionPath: "deploymentStrategy.monitoring", Kind: KindString, Mode: ModeReplace},
			{ResultKey: "launchPlan", SectionPath: "deploymentStrategy.launchPlan", Kind: KindObject, Mode: ModeReplace},
		},
	}
}

func documentationPlan() *Template {
	return &Template{
		ID:           "generate-documentation-plan",
		SystemPrompt: "You are a technical writer planning documentation.",
		MaxTokens:    3000,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate documentation plan for "%s". Tech: %s. Platform: %s.
Return JSON: {"technical":{"apiDocs":"...","dbSchemaDocs":"...","deploymentGuides":"..."},"user":{"onboardingMaterials":"...","helpSystem":"...","trainingResources":"..."}}`,
				str(in, "appName"), jsonValue(in, "techStack", "{}"), joinList(in, "platform"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "technical", SectionPath: "documentationPlan.technical", Kind: KindObject, Mode: ModeReplace},
			{ResultKey: "user", SectionPath: "documentationPlan.user", Kind: KindObject, Mode: ModeReplace},
		},
	}
}

func budgetEstimation() *Template {
	return &Template{
		ID:           "generate-budget-estimation",
		SystemPrompt: "You are a project budget analyst.",
		MaxTokens:    3500,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Generate budget estimation for "%s". Tech: %s. Timeline: %s. Team: %s. Platform: %s.
Return JSON: {"costs":{"developmentCosts":"...","operationalCosts":"...","marketingCosts":"..."},"team":{"requiredRoles":[{"role":"...","count":1,"timing":"full-time|part-time|contract"}],"scalingTimeline":"...","contractorNeeds":"..."}}
Be specific with cost estimates and team composition.`,
				str(in, "appName"), jsonValue(in, "techStack", "{}"),
				strOr(in, "timeline", "not specified"), strOr(in, "teamSize", "not specified"),
				joinList(in, "platform"))
		},
		Bindings: []SectionBinding{
			{ResultKey: "costs", SectionPath: "budgetPlanning.costs", Kind: KindObject, Mode: ModeReplace},
			{ResultKey: "team", SectionPath: "budgetPlanning.team", Kind: KindObject, Mode: ModeReplace},
		},
	}
}

func validateTechStack() *Template {
	return &Template{
		ID:           "validate-tech-stack",
		SystemPrompt: "You are a technical architect validating tech stacks.",
		MaxTokens:    1500,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Validate this technology stack for compatibility: %s.
Return JSON: {"compatible":true/false,"warnings":["..."],"recommendations":["..."],"incompatibilities":["..."]}
Check for version conflicts, architectural mismatches, and suggest improvements.`,
				jsonValue(in, "selectedTechStack", "{}"))
		},
	}
}

func validateTimeline() *Template {
	return &Template{
		ID:           "validate-timeline",
		SystemPrompt: "You are a project manager validating timelines.",
		MaxTokens:    1500,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Validate this project timeline. Milestones: %s. Features: %s. Team: %s.
Return JSON: {"feasible":true/false,"warnings":["..."],"suggestions":["..."]}`,
				jsonValue(in, "milestones", "[]"), jsonValue(in, "features", "{}"), strOr(in, "teamSize", "not specified"))
		},
	}
}

func validateBudget() *Template {
	return &Template{
		ID:           "validate-budget",
		SystemPrompt: "You are a financial analyst validating project budgets.",
		MaxTokens:    1500,
		Build: func(in Inputs) string {
			return fmt.Sprintf(`Validate this budget. Budget: %s. Features: %s. Timeline: %s.
Return JSON: {"realistic":true/false,"warnings":["..."],"adjustments":["..."]}`,
				jsonValue(in, "budgetEstimates", "{}"), jsonValue(in, "features", "{}"), jsonValue(in, "timeline", "{}"))
		},
	}
}

// validateDependencies expects the handler to precompute "summary" and
// "completeness" from the raw form data; the computed percentage is also
// forced back into the parsed result after extraction.
func validateDependencies() *Template {
	return &Template{
		ID:           "validate-dependencies",
		SystemPrompt: "You are a PRD quality analyst.",
		MaxTokens:    1500,
		Build: func(in Inputs) string {
			completeness := str(in, "completeness")
			if completeness == "" {
				completeness = "0"
			}
			return fmt.Sprintf(`Analyze PRD completeness: %s. Completeness: %s%%.
Return JSON: {"missingDependencies":["..."],"suggestions":["..."],"completeness":%s}
List what's missing and suggest what to fill next for a complete PRD.`,
				jsonValue(in, "summary", "{}"), completeness, completeness)
		},
	}
}
