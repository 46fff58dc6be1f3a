package services

import (
	"fmt"
	"strings"

	"study-spark-backend/models"
)

const baseInstruction = "You are a helpful study assistant. Provide accurate, educational answers that help students learn."

// BuildBehaviorProfile derives the system instruction for a generation
// call from the request settings. Clause order is fixed: base, simplified,
// step-by-step.
func BuildBehaviorProfile(settings models.ChatSettings) string {
	var profile strings.Builder
	profile.WriteString(baseInstruction)

	if settings.SimplifiedAnswers {
		profile.WriteString(" Favor simplified, beginner-friendly explanations and avoid jargon.")
	}
	if settings.StepByStepSolutions {
		profile.WriteString(" When a question involves a process or problem, explicitly break your answer into a step-by-step structure.")
	}

	return profile.String()
}

// BuildPrompt composes the text sent to the model. With documents present
// the question is wrapped in a grounding template that embeds every
// document's text in input order; without documents the question passes
// through unmodified. Composition is pure: the same inputs always produce
// the same prompt.
func BuildPrompt(question string, documents []models.Document) string {
	if len(documents) == 0 {
		return question
	}

	var contextBlock strings.Builder
	for _, doc := range documents {
		contextBlock.WriteString(fmt.Sprintf("Document: %s\n%s\n\n", doc.Name, doc.Text))
	}

	var prompt strings.Builder
	prompt.WriteString("Context from uploaded study materials:\n\n")
	prompt.WriteString(contextBlock.String())
	prompt.WriteString("Answer the following question primarily from the material above when it is relevant. ")
	prompt.WriteString("If the material does not cover the question, answer from your general knowledge.\n\n")
	prompt.WriteString("Question: ")
	prompt.WriteString(question)

	return prompt.String()
}
