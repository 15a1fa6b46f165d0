package content

import "google.golang.org/genai"

func stringList(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Items:       &genai.Schema{Type: genai.TypeString},
		Description: description,
	}
}

var wordListSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"word":            {Type: genai.TypeString},
			"pronunciation":   {Type: genai.TypeString, Description: "Phonetic spelling"},
			"meaning":         {Type: genai.TypeString},
			"partOfSpeech":    {Type: genai.TypeString},
			"synonyms":        stringList(""),
			"antonyms":        stringList(""),
			"exampleSentence": {Type: genai.TypeString},
			"difficultyLevel": {Type: genai.TypeInteger, Description: "1 to 10 scale"},
		},
		Required: []string{"word", "meaning", "exampleSentence", "partOfSpeech"},
	},
}

var quizSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":            {Type: genai.TypeString},
			"question":      {Type: genai.TypeString},
			"options":       stringList("4 options"),
			"correctAnswer": {Type: genai.TypeString},
			"type": {
				Type: genai.TypeString,
				Enum: []string{"meaning", "synonym", "sentence"},
			},
		},
		Required: []string{"question", "options", "correctAnswer", "type"},
	},
}
