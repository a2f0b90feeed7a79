package session

import "strings"

// Question is a trivia prompt with its accepted answers
type Question struct {
	Prompt  string
	Answers []string
	Display string
}

// Accepts compares a reply against the accepted answers, ignoring case and surrounding space
func (q Question) Accepts(reply string) bool {
	reply = strings.ToLower(strings.TrimSpace(reply))
	for _, a := range q.Answers {
		if reply == a {
			return true
		}
	}
	return false
}

// DefaultQuestions is the built-in trivia pool
var DefaultQuestions = []Question{
	{Prompt: "What is the capital of France?", Answers: []string{"paris"}, Display: "Paris"},
	{Prompt: "What is 2 + 2?", Answers: []string{"4", "four"}, Display: "4"},
	{Prompt: "What color is the sky on a clear day?", Answers: []string{"blue"}, Display: "Blue"},
	{Prompt: "How many continents are there?", Answers: []string{"7", "seven"}, Display: "7"},
	{Prompt: "What is the largest planet in our solar system?", Answers: []string{"jupiter"}, Display: "Jupiter"},
	{Prompt: "What year did World War 2 end?", Answers: []string{"1945"}, Display: "1945"},
	{Prompt: "What is the fastest land animal?", Answers: []string{"cheetah"}, Display: "Cheetah"},
	{Prompt: "Who painted the Mona Lisa?", Answers: []string{"leonardo da vinci", "da vinci", "leonardo"}, Display: "Leonardo da Vinci"},
	{Prompt: "What is the chemical symbol for gold?", Answers: []string{"au"}, Display: "Au"},
	{Prompt: "How many legs does a spider have?", Answers: []string{"8", "eight"}, Display: "8"},
}
