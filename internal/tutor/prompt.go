package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/guruai/internal/profile"
)

// FallbackReply is shown in place of an answer whenever a turn fails.
const FallbackReply = "I'm sorry, I couldn't process that."

// ImageTurnText is the user message recorded for a captured photo.
const ImageTurnText = "Please explain this problem from the image:"

// DefaultImageHint is used when a photo is sent without a question.
const DefaultImageHint = "What is in this image?"

const visionSystemPrompt = "You are a visual aid teacher. Focus on clarity and explaining diagrams if present."

// SystemInstruction builds the tutor persona for the student's board,
// grade and the selected subject.
func SystemInstruction(p profile.Profile, subject profile.Subject) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are GuruAI, an expert Indian school teacher specializing in the %s curriculum for %s standard students under the %s board.\n",
		subject, p.Grade, p.Board)
	b.WriteString("Your goal is to explain complex concepts simply, using examples from the Indian context (e.g., using Indian names, currency (₹), and local geography in word problems).\n")
	fmt.Fprintf(&b, "Strictly follow the %s curriculum for these grades.\n", p.Board.Curriculum())
	b.WriteString("Break down long answers into bullet points. Use encouraging language.\n")
	b.WriteString("If the student asks something outside their syllabus, briefly explain it but bring them back to their core curriculum.\n")
	b.WriteString("For Mathematics, provide step-by-step solutions.\n")
	b.WriteString("Always ask if the student understood or if they want to try a practice question.")
	if name := p.FirstName(); name != "" {
		fmt.Fprintf(&b, "\nThe student's name is %s.", name)
	}
	return b.String()
}

func visionPrompt(grade profile.Grade, hint string) string {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		hint = DefaultImageHint
	}
	return fmt.Sprintf("A %s student needs help with this. Explain step-by-step: %s", grade, hint)
}
