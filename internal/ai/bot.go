package ai

import (
	"regexp"
	"strings"
)

// Intent keywords, checked against the lowercased message
var intentKeywords = map[string][]string{
	"file_complaint": {"complaint", "report", "issue", "problem", "file"},
	"check_status":   {"status", "check", "update", "progress"},
	"get_services":   {"services", "help", "what can", "available"},
	"admin_help":     {"admin", "manage", "administration", "control"},
	"greeting":       {"hello", "hi", "hey", "good morning", "good afternoon"},
	"goodbye":        {"bye", "goodbye", "see you", "thanks", "thank you"},
}

var intentResponses = map[string]string{
	"file_complaint": "I can help you file a complaint. What type of issue would you like to report? We handle roads, water, electricity, waste management, public safety, and parks & recreation.",
	"check_status":   "I can help you check your complaint status. Please provide your complaint ID or I can look up your recent complaints.",
	"get_services":   "CityCare offers these services:\n• Roads & Infrastructure\n• Water Supply\n• Electricity\n• Waste Management\n• Public Safety\n• Parks & Recreation\n\nWhich service do you need help with?",
	"admin_help":     "I have admin privileges and can help you with:\n• Managing complaints\n• Assigning resources\n• Updating complaint status\n• Viewing user information\n• Generating reports\n\nWhat would you like to do?",
	"greeting":       "Hello! I'm your CityCare AI Assistant. I'm here to help you with city services, complaints, and administrative tasks. How can I assist you today?",
	"goodbye":        "Thank you for using CityCare! Have a great day and don't hesitate to reach out if you need any assistance.",
}

var intentActions = map[string][]string{
	"file_complaint": {"File a new complaint", "Upload photos of the issue", "Set complaint priority"},
	"check_status":   {"View complaint details", "Check recent updates", "Contact assigned team"},
	"admin_help":     {"View all complaints", "Manage resources", "Generate reports", "Update complaint status"},
}

var complaintIDPattern = regexp.MustCompile(`CC-[0-9A-Fa-f]{8}`)

// AnalyzeMessage detects the user's intent with keyword matching and builds
// the reply. fallbackMessage is used when nothing matches.
func AnalyzeMessage(message, fallbackMessage string) ChatResponse {
	lower := strings.ToLower(message)

	intent := "fallback"
	confidence := 0.0
	for name, keywords := range intentKeywords {
		matches := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		c := float64(matches) / float64(len(keywords))
		if c > confidence || (c == confidence && name < intent) {
			confidence = c
			intent = name
		}
	}

	reply := fallbackMessage
	if r, ok := intentResponses[intent]; ok {
		reply = r
	}

	entities := []Entity{}
	if id := complaintIDPattern.FindString(message); id != "" {
		entities = append(entities, Entity{Entity: "complaint_id", Value: strings.ToUpper(id)})
	}

	actions := intentActions[intent]
	if actions == nil {
		actions = []string{}
	}

	boosted := confidence + 0.3
	if boosted > 1.0 {
		boosted = 1.0
	}
	if intent == "fallback" {
		boosted = 0.0
	}

	return ChatResponse{
		Message:          reply,
		Intent:           intent,
		Confidence:       boosted,
		Entities:         entities,
		SuggestedActions: actions,
	}
}

// SuggestCategory proposes up to three complaint titles for a description.
func SuggestCategory(description string) SuggestCategoryResponse {
	lower := strings.ToLower(description)

	var suggestions []string
	switch {
	case strings.Contains(lower, "pothole") || strings.Contains(lower, "road"):
		suggestions = []string{"Pothole on main road", "Road surface damage", "Traffic hazard on street"}
	case strings.Contains(lower, "light"):
		suggestions = []string{"Street light not working", "Broken street lamp", "Dark street area"}
	case strings.Contains(lower, "water") || strings.Contains(lower, "leak"):
		suggestions = []string{"Water leak on sidewalk", "Pipe burst", "Water pressure issue"}
	case strings.Contains(lower, "garbage") || strings.Contains(lower, "trash"):
		suggestions = []string{"Garbage not collected", "Overflowing trash bin", "Illegal dumping"}
	default:
		suggestions = []string{"General infrastructure issue", "Public safety concern", "Maintenance required"}
	}

	return SuggestCategoryResponse{Suggestions: suggestions, Confidence: 0.85}
}
