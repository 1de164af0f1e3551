package chatbot

import "testing"

func membership(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, s := range list {
		set[s] = true
	}
	return set
}

func TestRespondPicksFromMatchingGroup(t *testing.T) {
	tests := []struct {
		name    string
		message string
		group   string
	}{
		{"greeting", "Hello there", "greeting"},
		{"greeting case-insensitive", "HEY, anyone home?", "greeting"},
		{"help", "I need some help with this", "help"},
		{"skills", "how do I evaluate my skills?", "skills"},
		{"analysis", "show me my progress report", "analysis"},
		{"account", "I forgot my password", "account"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var replies []string
			for _, g := range groups {
				if g.name == tt.group {
					replies = g.replies
				}
			}
			if replies == nil {
				t.Fatalf("no group named %q", tt.group)
			}
			allowed := membership(replies)
			for i := 0; i < 20; i++ {
				reply := Respond(tt.message)
				if !allowed[reply] {
					t.Fatalf("Respond(%q) = %q, not in the %s group", tt.message, reply, tt.group)
				}
			}
		})
	}
}

func TestRespondGroupOrder(t *testing.T) {
	// "hi" and "help" both match; the greeting group is tested first.
	allowed := membership(groups[0].replies)
	for i := 0; i < 20; i++ {
		if reply := Respond("hi, can you help me?"); !allowed[reply] {
			t.Fatalf("Respond = %q, want a greeting reply", reply)
		}
	}
}

func TestRespondDefaultGroup(t *testing.T) {
	allowed := membership(defaultReplies)
	for i := 0; i < 20; i++ {
		if reply := Respond("what is the weather like today"); !allowed[reply] {
			t.Fatalf("Respond = %q, not in the default list", reply)
		}
	}
}
