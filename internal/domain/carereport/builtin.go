package carereport

const DefaultVariantKey = "care-plan"

var defaultSystem = []string{
	"You're a veterinary-trained AI that provides evidence-based pet care advice.",
	"Prioritize observable factors from images and owner-reported information.",
	"Recommend products only from certified pet care brands and veterinary-approved sources.",
	"Always consider breed-specific needs and potential health risk factors.",
	"Present information in clear sections with emoji icons for readability.",
}

// BuiltinVariants devuelve una copia nueva en cada llamada.
func BuiltinVariants() []Variant {
	return []Variant{
		{
			Key:   "care-plan",
			Title: "Smart Pet Care Assistant",
			Analysis: AnalysisTemplate{
				Preamble: "Analyze this pet photo and provide:",
				Focus: []string{
					"Breed identification with confidence level",
					"Estimated age range",
					"Visible weight assessment",
					"Coat/skin condition observations",
					"Notable physical features",
					"Immediate care recommendations",
				},
			},
			Report: ReportTemplate{
				System:   defaultSystem,
				Preamble: "Comprehensive care plan covering:",
				Sections: []string{
					"Nutrition recommendations",
					"Preventive care measures",
					"Behavioral/environmental suggestions",
					"Recommended health monitoring",
				},
				Closing:   "Include product links where appropriate.",
				WebSearch: true,
			},
			Concerns: []string{"Preventive Care", "Skin/Coat", "Dental", "Mobility", "Behavioral"},
		},
		{
			Key:   "nutrition",
			Title: "Pet Nutrition Advisor",
			Analysis: AnalysisTemplate{
				Preamble: "Examine this pet photo and report on:",
				Focus: []string{
					"Body condition score (1-9 scale) with reasoning",
					"Muscle tone and visible fat deposits",
					"Coat sheen as a nutrition indicator",
					"Estimated life stage",
				},
			},
			Report: ReportTemplate{
				System: []string{
					"You are a board-certified veterinary nutritionist assistant.",
					"Base every recommendation on the visual analysis and the owner's answers.",
					"Recommend only AAFCO-compliant diets from certified brands.",
					"Flag anything that needs an in-person veterinary visit.",
				},
				Preamble: "Feeding plan with the following sections:",
				Sections: []string{
					"Daily Calorie Target",
					"Recommended Diet & Portions",
					"Treats and Supplements",
					"Weight Monitoring Checklist",
				},
			},
			Concerns: []string{"Weight Management", "Allergies", "Puppy/Kitten", "Senior", "Prescription Diet"},
		},
		{
			Key:   "skin-coat",
			Title: "Skin & Coat Check",
			Analysis: AnalysisTemplate{
				Preamble: "Look closely at the coat and skin in this pet photo and describe:",
				Focus: []string{
					"Coat condition (dryness, flaking, shedding, matting)",
					"Visible redness, lesions or hair loss",
					"Signs of parasites",
					"Signs of scratching or licking",
				},
			},
			Report: ReportTemplate{
				System: []string{
					"You are a veterinary dermatology assistant.",
					"Do not diagnose; describe likely causes and when to see a vet.",
					"Recommend only veterinary-approved grooming and parasite products.",
				},
				Preamble: "Skin and coat report covering:",
				Sections: []string{
					"Likely Causes",
					"Grooming Routine",
					"Diet Adjustments for Skin Health",
					"When to See a Vet",
				},
			},
			Concerns: []string{"Itching", "Hair Loss", "Skin/Coat", "Parasites"},
		},
		{
			Key:   "senior-care",
			Title: "Senior Pet Companion",
			Analysis: AnalysisTemplate{
				Preamble: "Assess this photo of an older pet, noting:",
				Focus: []string{
					"Posture and signs of joint stiffness",
					"Eye clarity and visible cloudiness",
					"Muscle mass along the back and hind legs",
					"Visible discomfort",
				},
			},
			Report: ReportTemplate{
				System: []string{
					"You are a geriatric veterinary care assistant.",
					"Keep a warm, reassuring tone for owners of aging pets.",
					"Recommend only certified brands and veterinary-approved sources.",
				},
				Preamble: "Senior care guide with these sections:",
				Sections: []string{
					"Mobility & Comfort",
					"Nutrition for Older Pets",
					"Preventive Care",
					"Monitoring Checklist",
				},
			},
			Concerns: []string{"Mobility", "Cognitive Changes", "Dental", "Weight Management"},
		},
		{
			Key:   "wellness",
			Title: "Quick Wellness Snapshot",
			Analysis: AnalysisTemplate{
				Preamble: "From this pet photo, summarize observable wellness indicators:",
				Focus: []string{
					"Body condition score",
					"Coat condition",
					"Eyes, ears and nose",
				},
			},
			Report: ReportTemplate{
				System:   defaultSystem,
				Preamble: "Short wellness summary covering:",
				Sections: []string{
					"Overall Impression",
					"Preventive Care",
					"Monitoring Checklist",
				},
			},
		},
	}
}
