// internal/app/features/chat/chat.go
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Source values reported with every reply.
const (
	SourceResponder = "responder"
	SourceCanned    = "canned"
)

// Responder forwards a message to an external chat service.
type Responder struct {
	URL    string
	Client *http.Client
}

type responderRequest struct {
	Message string `json:"message"`
}

type responderReply struct {
	Reply string `json:"reply"`
}

// Reply posts message to the responder and returns its reply. An empty
// reply is an error.
func (rs *Responder) Reply(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(responderRequest{Message: message})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rs.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := rs.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("responder returned %d", resp.StatusCode)
	}
	var out responderReply
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&out); err != nil {
		return "", fmt.Errorf("decode responder reply: %w", err)
	}
	reply := strings.TrimSpace(out.Reply)
	if reply == "" {
		return "", fmt.Errorf("responder returned an empty reply")
	}
	return reply, nil
}

type cannedReply struct {
	keywords []string
	reply    string
}

// Checked in order; the first topic with a matching keyword wins.
var canned = []cannedReply{
	{[]string{"event", "meetup", "workshop", "hackathon"},
		"Check the Events page for upcoming meetups, workshops, and hackathons. Each event lists its date, location, and how to take part."},
	{[]string{"project", "build", "repo"},
		"Our members' work is on the Projects page, with links to code and demos. Like or comment on anything that catches your eye."},
	{[]string{"merch", "shirt", "hoodie", "sticker", "shop", "store"},
		"Club merchandise is in the shop. Add items to your cart, pick a size or color where offered, and check out with your contact details."},
	{[]string{"order", "track", "shipping", "shipped", "delivery"},
		"You can track an order with its order number and the email you used at checkout. Orders move from pending to confirmed, then shipped and delivered."},
	{[]string{"join", "member", "sign up", "signup", "apply"},
		"Anyone can apply to join: submit your profile on the Members page and an admin will approve it."},
	{[]string{"contact", "email", "reach", "question"},
		"Send us a note through the contact form and an organizer will get back to you."},
	{[]string{"hello", "hi", "hey", "greetings"},
		"Hi there! Ask me about events, projects, merchandise, orders, or how to join the club."},
}

const defaultReply = "I can help with events, projects, merchandise, orders, joining the club, or getting in touch. What would you like to know?"

// CannedReply picks a fixed reply by keyword.
func CannedReply(message string) string {
	m := " " + strings.ToLower(message) + " "
	for _, c := range canned {
		for _, k := range c.keywords {
			if containsWord(m, k) {
				return c.reply
			}
		}
	}
	return defaultReply
}

// containsWord matches k at a word start so "hi" does not match "this".
func containsWord(s, k string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], k)
		if j < 0 {
			return false
		}
		j += i
		if j == 0 || !isLetter(s[j-1]) {
			return true
		}
		i = j + 1
	}
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}
