package quiz

import "fmt"

const systemPrompt = `You set multiple-choice quizzes for Indian school students.
Every question has exactly four options and exactly one correct answer.
Keep the language simple and the questions within the grade's syllabus.`

func buildUserMessage(in Input) string {
	return fmt.Sprintf("Generate a 5-question MCQ quiz for a %s student on the topic: %q in %s. Provide the output in JSON format.",
		in.Grade, in.Topic, in.Subject)
}
