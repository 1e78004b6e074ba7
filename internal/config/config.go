package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	OpenAIKey     string
	OpenAIModel   string
	GoogleAPIKey  string
	CalendarToken string
	CalendarID    string
	LanguageCode  string
	CRMPath       string

	// MaxResultWait bounds how long a conversation turn waits for the
	// background recognition worker before treating the turn as failed.
	MaxResultWait time.Duration
}

// Load reads environment variables and returns Config with sane defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	openAIKey := os.Getenv("OPEN_AI_API_KEY")
	if openAIKey == "" {
		log.Println("Warning: OPEN_AI_API_KEY not set - reply generation will not work")
	}
	model := os.Getenv("OPEN_AI_MODEL_ID")
	if model == "" {
		model = "gpt-4"
	}

	googleKey := os.Getenv("GOOGLE_API_KEY")
	if googleKey == "" {
		log.Println("Warning: GOOGLE_API_KEY not set - transcription and speech synthesis will not work")
	}

	calendarToken := os.Getenv("GOOGLE_CALENDAR_TOKEN")
	if calendarToken == "" {
		log.Println("Warning: GOOGLE_CALENDAR_TOKEN not set - demo booking will not work")
	}
	calendarID := os.Getenv("GOOGLE_CALENDAR_ID")
	if calendarID == "" {
		calendarID = "primary"
	}

	lang := os.Getenv("LANGUAGE_CODE")
	if lang == "" {
		lang = "hi-IN"
	}

	crmPath := os.Getenv("CRM_PATH")
	if crmPath == "" {
		crmPath = "crm_data/customer_interactions.txt"
	}

	maxWait := 3 * time.Second
	if v := os.Getenv("MAX_RESULT_WAIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("Warning: invalid MAX_RESULT_WAIT %q, using default", v)
		} else {
			maxWait = d
		}
	}

	log.Printf("config: language=%s model=%s crm=%s", lang, model, crmPath)
	return Config{
		OpenAIKey:     openAIKey,
		OpenAIModel:   model,
		GoogleAPIKey:  googleKey,
		CalendarToken: calendarToken,
		CalendarID:    calendarID,
		LanguageCode:  lang,
		CRMPath:       crmPath,
		MaxResultWait: maxWait,
	}
}
