package database

import (
	"fmt"

	"github.com/evandrarf/learnquest-be/internal/entity"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var allGrades = []string{"elementary", "middle", "high", "college"}
var allDifficulties = []string{"easy", "medium", "hard"}

// SubjectData - Mata pelajaran awal
var SubjectData = []entity.Subject{
	{Name: "Mathematics", Description: "Arithmetic, algebra, geometry and calculus", Icon: "calculator"},
	{Name: "Physics", Description: "Motion, energy, waves and electricity", Icon: "atom"},
	{Name: "Chemistry", Description: "Reactions, stoichiometry and the periodic table", Icon: "flask"},
	{Name: "Biology", Description: "Cells, genetics, ecology and the human body", Icon: "leaf"},
	{Name: "English", Description: "Grammar, reading comprehension and writing", Icon: "book"},
	{Name: "History", Description: "Events, sources and historical reasoning", Icon: "landmark"},
}

type templateSeed struct {
	Subject string
	entity.PromptTemplate
}

// TemplateData - Template prompt awal per subject
var TemplateData = []templateSeed{
	{"Mathematics", entity.PromptTemplate{
		Title:              "Step-by-step math solver",
		TemplateText:       "You are a math tutor for a {{grade_level}} student. Solve the following {{difficulty}} {{subject}} problem and show every step.\n\nProblem: {{input}}",
		InputType:          "any",
		Difficulty:         "medium",
		GradeLevels:        datatypes.JSONSlice[string]{"middle", "high"},
		Keywords:           datatypes.JSONSlice[string]{"algebra", "equation", "arithmetic"},
		RequiresStepByStep: true,
		MaxTokens:          1500,
		Temperature:        0.3,
	}},
	{"Mathematics", entity.PromptTemplate{
		Title:              "Gentle intro for beginners",
		TemplateText:       "Explain to a {{grade_level}} learner, using simple words, how to solve this {{subject}} problem:\n\n{{input}}",
		InputType:          "any",
		Difficulty:         "easy",
		GradeLevels:        datatypes.JSONSlice[string]{"elementary", "middle"},
		Keywords:           datatypes.JSONSlice[string]{"arithmetic", "fractions"},
		RequiresStepByStep: true,
		IncludesExamples:   true,
		MaxTokens:          1000,
		Temperature:        0.5,
	}},
	{"Mathematics", entity.PromptTemplate{
		Title:                 "Proof and calculus coach",
		TemplateText:          "Act as a rigorous {{subject}} coach for a {{grade_level}} student. Work through this {{difficulty}} problem, justify each step and name the theorems used.\n\n{{input}}",
		InputType:             "text",
		Difficulty:            "hard",
		GradeLevels:           datatypes.JSONSlice[string]{"high", "college"},
		Keywords:              datatypes.JSONSlice[string]{"calculus", "proof", "limits", "integral"},
		RequiresStepByStep:    true,
		EncouragesExploration: true,
		MaxTokens:             2500,
		Temperature:           0.2,
	}},
	{"Mathematics", entity.PromptTemplate{
		Title:              "Worksheet photo reader",
		TemplateText:       "The attached image shows a {{subject}} exercise for a {{grade_level}} student. Read it carefully, restate the problem, then solve it.\n\n{{input}}",
		InputType:          "image",
		Difficulty:         "medium",
		GradeLevels:        datatypes.JSONSlice[string]{"elementary", "middle", "high"},
		Keywords:           datatypes.JSONSlice[string]{"geometry", "worksheet"},
		RequiresStepByStep: true,
		MaxTokens:          1500,
		Temperature:        0.3,
	}},
	{"Physics", entity.PromptTemplate{
		Title:              "Physics problem walkthrough",
		TemplateText:       "Solve this {{difficulty}} {{subject}} problem for a {{grade_level}} student. List the known quantities, pick the formula, then compute with units.\n\n{{input}}",
		InputType:          "any",
		Difficulty:         "medium",
		GradeLevels:        datatypes.JSONSlice[string]{"middle", "high", "college"},
		Keywords:           datatypes.JSONSlice[string]{"kinematics", "force", "energy"},
		RequiresStepByStep: true,
		IncludesExamples:   true,
		MaxTokens:          1500,
		Temperature:        0.3,
	}},
	{"Chemistry", entity.PromptTemplate{
		Title:              "Reaction and stoichiometry helper",
		TemplateText:       "Help a {{grade_level}} student with this {{subject}} question. Balance equations where needed and show mole calculations.\n\n{{input}}",
		InputType:          "any",
		Difficulty:         "medium",
		GradeLevels:        datatypes.JSONSlice[string]{"high", "college"},
		Keywords:           datatypes.JSONSlice[string]{"stoichiometry", "reaction", "mole"},
		RequiresStepByStep: true,
		MaxTokens:          1500,
		Temperature:        0.3,
	}},
	{"Biology", entity.PromptTemplate{
		Title:                 "Concept explainer",
		TemplateText:          "Explain the {{subject}} concept behind this question to a {{grade_level}} student, then answer it.\n\n{{input}}",
		InputType:             "any",
		Difficulty:            "easy",
		GradeLevels:           datatypes.JSONSlice[string]{"elementary", "middle", "high"},
		Keywords:              datatypes.JSONSlice[string]{"cell", "genetics", "ecology"},
		IncludesExamples:      true,
		EncouragesExploration: true,
		MaxTokens:             1200,
		Temperature:           0.6,
	}},
	{"English", entity.PromptTemplate{
		Title:            "Grammar and writing feedback",
		TemplateText:     "You are an English teacher for a {{grade_level}} student. Answer the question or correct the text below and explain each fix.\n\n{{input}}",
		InputType:        "text",
		Difficulty:       "medium",
		GradeLevels:      datatypes.JSONSlice[string]{"elementary", "middle", "high", "college"},
		Keywords:         datatypes.JSONSlice[string]{"grammar", "essay", "reading"},
		IncludesExamples: true,
		MaxTokens:        1200,
		Temperature:      0.5,
	}},
	{"English", entity.PromptTemplate{
		Title:        "Pronunciation coach",
		TemplateText: "The attached recording is a {{grade_level}} student reading aloud. Transcribe it, point out mispronounced words and suggest practice.\n\n{{input}}",
		InputType:    "voice",
		Difficulty:   "medium",
		GradeLevels:  datatypes.JSONSlice[string]{"elementary", "middle"},
		Keywords:     datatypes.JSONSlice[string]{"pronunciation", "reading"},
		MaxTokens:    1000,
		Temperature:  0.4,
	}},
	{"History", entity.PromptTemplate{
		Title:                 "Source-based history tutor",
		TemplateText:          "Answer this {{subject}} question for a {{grade_level}} student. Give context, causes and consequences, and mention one primary source worth reading.\n\n{{input}}",
		InputType:             "text",
		Difficulty:            "medium",
		GradeLevels:           datatypes.JSONSlice[string]{"middle", "high", "college"},
		Keywords:              datatypes.JSONSlice[string]{"war", "revolution", "empire"},
		EncouragesExploration: true,
		MaxTokens:             1500,
		Temperature:           0.6,
	}},
}

// AchievementData - Katalog achievement default
var AchievementData = []entity.Achievement{
	{Name: "First Steps", Description: "Solve your first problem", Category: "progress", Rarity: "common", Icon: "footprints", Criteria: datatypes.JSON(`{"problems_solved": 1}`), Points: 10},
	{Name: "Problem Solver", Description: "Solve 10 problems", Category: "progress", Rarity: "common", Icon: "puzzle", Criteria: datatypes.JSON(`{"problems_solved": 10}`), Points: 25},
	{Name: "Century", Description: "Solve 100 problems", Category: "progress", Rarity: "epic", Icon: "trophy", Criteria: datatypes.JSON(`{"problems_solved": 100}`), Points: 150},
	{Name: "On a Roll", Description: "Study 3 days in a row", Category: "streak", Rarity: "common", Icon: "flame", Criteria: datatypes.JSON(`{"current_streak": 3}`), Points: 15},
	{Name: "Week Warrior", Description: "Study 7 days in a row", Category: "streak", Rarity: "rare", Icon: "calendar", Criteria: datatypes.JSON(`{"current_streak": 7}`), Points: 50},
	{Name: "Unstoppable", Description: "Reach a 30 day streak", Category: "streak", Rarity: "legendary", Icon: "rocket", Criteria: datatypes.JSON(`{"longest_streak": 30}`), Points: 200},
	{Name: "Level 5", Description: "Reach level 5", Category: "mastery", Rarity: "rare", Icon: "star", Criteria: datatypes.JSON(`{"level": 5}`), Points: 50},
	{Name: "Explorer", Description: "Study 3 different subjects", Category: "exploration", Rarity: "common", Icon: "compass", Criteria: datatypes.JSON(`{"distinct_subjects": 3}`), Points: 20},
	{Name: "Perfectionist", Description: "Give 10 five-star ratings", Category: "mastery", Rarity: "rare", Icon: "sparkles", Criteria: datatypes.JSON(`{"five_star_ratings": 10}`), Points: 40},
	{Name: "Marathon", Description: "Solve 10 problems in one day", Category: "progress", Rarity: "epic", Icon: "timer", Criteria: datatypes.JSON(`{"max_problems_in_one_day": 10}`), Points: 75},
	{Name: "Dedicated Learner", Description: "Study for 10 hours in total", Category: "progress", Rarity: "rare", Icon: "hourglass", Criteria: datatypes.JSON(`{"study_minutes": 600}`), Points: 60},
}

// Seed - Isi data awal kalau tabel masih kosong
func Seed(db *gorm.DB, log *logrus.Logger) error {
	if err := SeedCatalog(db, log); err != nil {
		return err
	}
	return SeedAchievements(db, log)
}

func SeedCatalog(db *gorm.DB, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&entity.Subject{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Catalog already seeded, skipping...")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		subjects := make(map[string]entity.Subject, len(SubjectData))
		for _, s := range SubjectData {
			subject := s
			subject.GradeLevels = datatypes.JSONSlice[string](allGrades)
			subject.DifficultyLevels = datatypes.JSONSlice[string](allDifficulties)
			subject.IsActive = true
			if err := tx.Create(&subject).Error; err != nil {
				return fmt.Errorf("failed to seed subject %s: %w", s.Name, err)
			}
			subjects[subject.Name] = subject
		}

		for _, seed := range TemplateData {
			subject, ok := subjects[seed.Subject]
			if !ok {
				return fmt.Errorf("template %q references unknown subject %s", seed.Title, seed.Subject)
			}
			tpl := seed.PromptTemplate
			tpl.SubjectID = subject.ID
			tpl.IsActive = true
			tpl.CreatedBy = "seed"
			if err := tx.Create(&tpl).Error; err != nil {
				return fmt.Errorf("failed to seed template %s: %w", seed.Title, err)
			}
		}

		log.WithFields(logrus.Fields{
			"subjects":  len(SubjectData),
			"templates": len(TemplateData),
		}).Info("Successfully seeded catalog")
		return nil
	})
}

func SeedAchievements(db *gorm.DB, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&entity.Achievement{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Achievements already seeded, skipping...")
		return nil
	}

	for _, a := range AchievementData {
		achievement := a
		achievement.IsActive = true
		if err := db.Create(&achievement).Error; err != nil {
			return fmt.Errorf("failed to seed achievement %s: %w", a.Name, err)
		}
	}

	log.WithField("achievements", len(AchievementData)).Info("Successfully seeded achievements")
	return nil
}
