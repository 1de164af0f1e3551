package chatbot

import (
	"math/rand"
	"regexp"
	"strings"
)

// Keyword-matched canned replies used when the hosted chat model cannot be
// reached. Groups are tested in order; the first match wins.

type keywordGroup struct {
	name    string
	pattern *regexp.Regexp
	replies []string
}

var groups = []keywordGroup{
	{
		name:    "greeting",
		pattern: regexp.MustCompile(`\b(hi|hello|hey|greetings)\b`),
		replies: []string{
			"Hello! How can I assist you with your healthcare skills analysis today?",
			"Hi there! I'm here to help you with skill assessments and learning paths!",
			"Hey! How may I help you with your professional development?",
		},
	},
	{
		name:    "help",
		pattern: regexp.MustCompile(`\b(help|assist|support)\b`),
		replies: []string{
			"I can help you with skill analysis, learning paths, account management, and platform navigation. What would you like to know?",
			"I'm here to assist you with healthcare skill assessments, career analysis, and platform features. Feel free to ask!",
		},
	},
	{
		name:    "skills",
		pattern: regexp.MustCompile(`\b(skill|skills|assessment|evaluate|competency)\b`),
		replies: []string{
			"Our platform offers comprehensive skill analysis for healthcare professionals. You can assess technical and clinical skills, identify gaps, and get personalized learning recommendations.",
			"We analyze your skills across multiple domains and provide detailed insights with actionable learning paths. Would you like to start an assessment?",
		},
	},
	{
		name:    "analysis",
		pattern: regexp.MustCompile(`\b(analysis|analyze|report|progress|learning path)\b`),
		replies: []string{
			"You can create detailed skill analyses, track your progress, and generate PDF reports. Visit the Analysis section to get started!",
			"Our analysis feature helps identify your strengths and areas for improvement. You can view your analysis history in your dashboard.",
		},
	},
	{
		name:    "account",
		pattern: regexp.MustCompile(`\b(account|profile|settings|password)\b`),
		replies: []string{
			"You can manage your account settings from the dashboard. Need help with something specific like profile updates or password reset?",
			"Your account includes your profile, analysis history, and learning progress. What would you like to update?",
		},
	},
}

var defaultReplies = []string{
	"I'm here to help with your healthcare skill development! Could you please provide more details?",
	"That's an interesting question! Let me help you with your professional growth journey.",
	"I'm not sure I understand completely. Could you rephrase that? I'm here to assist with skill analysis and learning paths.",
	"Thanks for your message! I'm here to help you excel in your healthcare career.",
}

// Respond picks a uniformly random reply from the first matching keyword
// group, or from the default list when nothing matches.
func Respond(message string) string {
	lower := strings.ToLower(message)
	for _, group := range groups {
		if group.pattern.MatchString(lower) {
			return group.replies[rand.Intn(len(group.replies))]
		}
	}
	return defaultReplies[rand.Intn(len(defaultReplies))]
}
