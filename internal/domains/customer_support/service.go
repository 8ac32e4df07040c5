// Package customersupport is a demo domain: support tickets and a small
// knowledge base. Ticket storage is in-memory and resets on restart.
package customersupport

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Ticket is one support ticket.
type Ticket struct {
	TicketID    string `json:"ticket_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TicketService stores tickets in memory.
type TicketService struct {
	mu      sync.Mutex
	tickets map[string]*Ticket
	counter int
}

// NewTicketService starts ticket numbering at TKT-1001.
func NewTicketService() *TicketService {
	return &TicketService{
		tickets: make(map[string]*Ticket),
		counter: 1000,
	}
}

// Create opens a new ticket. Priority defaults to medium.
func (s *TicketService) Create(title, description, priority string) *Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	if priority == "" {
		priority = "medium"
	}
	s.counter++
	now := time.Now().Format(time.RFC3339)
	t := &Ticket{
		TicketID:    fmt.Sprintf("TKT-%d", s.counter),
		Title:       title,
		Description: description,
		Status:      "open",
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tickets[t.TicketID] = t
	return t
}

// Update changes a ticket's status.
func (s *TicketService) Update(ticketID, status string) (*Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[ticketID]
	if !ok {
		return nil, fmt.Errorf("ticket %s not found", ticketID)
	}
	t.Status = status
	t.UpdatedAt = time.Now().Format(time.RFC3339)
	return t, nil
}

// Search matches the query against ticket ID, title and description.
func (s *TicketService) Search(query string) []*Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	var out []*Ticket
	for _, t := range s.tickets {
		if strings.Contains(strings.ToLower(t.TicketID), q) ||
			strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TicketID < out[j].TicketID })
	return out
}

// Article is one knowledge base entry.
type Article struct {
	ArticleID string   `json:"article_id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Content   string   `json:"content,omitempty"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags,omitempty"`
}

// SearchHit is an article match with its relevance score.
type SearchHit struct {
	ArticleID      string  `json:"article_id"`
	Title          string  `json:"title"`
	Summary        string  `json:"summary"`
	RelevanceScore float64 `json:"relevance_score"`
}

var knowledgeBase = map[string]Article{
	"KB001": {
		ArticleID: "KB001",
		Title:     "How to Reset Your Password",
		Summary:   "Step-by-step guide for resetting your account password",
		Content: `# How to Reset Your Password

Follow these steps to reset your password:

1. Go to the login page
2. Click "Forgot Password?" link
3. Enter your email address
4. Check your email for reset link
5. Click the link and create a new password
6. Confirm your new password

**Note:** Password must be at least 8 characters and include numbers and symbols.`,
		Category: "account",
		Tags:     []string{"password", "reset", "account", "security"},
	},
	"KB002": {
		ArticleID: "KB002",
		Title:     "Account Settings Configuration Guide",
		Summary:   "Learn how to configure your account settings and preferences",
		Content: `# Account Settings Configuration

## Accessing Settings

1. Log in to your account
2. Click your profile icon (top right)
3. Select "Settings" from dropdown

## Available Settings

- **Profile Information**: Update name, email, phone
- **Privacy Settings**: Control who can see your information
- **Notification Preferences**: Choose how you receive updates
- **Security Settings**: Two-factor authentication, password changes

## Saving Changes

Always click "Save" button at the bottom of each settings page.`,
		Category: "account",
		Tags:     []string{"settings", "configuration", "preferences", "profile"},
	},
	"KB003": {
		ArticleID: "KB003",
		Title:     "Troubleshooting Login Issues",
		Summary:   "Common login problems and their solutions",
		Content: `# Troubleshooting Login Issues

## Common Problems

### "Invalid Credentials" Error
- Double-check username and password
- Ensure Caps Lock is off
- Try resetting your password

### "Account Locked" Message
- Too many failed login attempts
- Wait 15 minutes and try again
- Contact support if problem persists

### Can't Receive Reset Email
- Check spam/junk folder
- Verify email address is correct
- Whitelist noreply@ourcompany.com

## Still Having Issues?

Create a support ticket and we'll help you out!`,
		Category: "troubleshooting",
		Tags:     []string{"login", "troubleshooting", "account", "password", "error"},
	},
	"KB004": {
		ArticleID: "KB004",
		Title:     "Getting Started Guide",
		Summary:   "Welcome! Here's how to get started with our platform",
		Content: `# Getting Started Guide

Welcome to our platform! Here's what you need to know:

## First Steps

1. **Complete Your Profile**
2. **Explore the Dashboard**
3. **Connect Your Tools**

## Need Help?

- Search our knowledge base
- Check out video tutorials
- Contact support team

Happy exploring!`,
		Category: "getting-started",
		Tags:     []string{"getting started", "welcome", "tutorial", "onboarding"},
	},
}

// SearchKnowledgeBase scores articles against the query: title matches weigh
// 1.0, each tag match 0.5, summary matches 0.3, capped at 1.0.
func SearchKnowledgeBase(query string, maxResults int) []SearchHit {
	if maxResults <= 0 {
		maxResults = 5
	}
	q := strings.ToLower(query)

	var hits []SearchHit
	for _, a := range knowledgeBase {
		score := 0.0
		if strings.Contains(strings.ToLower(a.Title), q) {
			score += 1.0
		}
		for _, tag := range a.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				score += 0.5
			}
		}
		if strings.Contains(strings.ToLower(a.Summary), q) {
			score += 0.3
		}
		if score > 0 {
			if score > 1.0 {
				score = 1.0
			}
			hits = append(hits, SearchHit{
				ArticleID:      a.ArticleID,
				Title:          a.Title,
				Summary:        a.Summary,
				RelevanceScore: score,
			})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].RelevanceScore != hits[j].RelevanceScore {
			return hits[i].RelevanceScore > hits[j].RelevanceScore
		}
		return hits[i].ArticleID < hits[j].ArticleID
	})

	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}
	return hits
}

// GetArticle returns the full content of one article.
func GetArticle(articleID string) (Article, error) {
	a, ok := knowledgeBase[articleID]
	if !ok {
		return Article{}, fmt.Errorf("article %s not found in knowledge base", articleID)
	}
	return a, nil
}

// ListArticleCategories returns the unique categories, sorted.
func ListArticleCategories() []string {
	seen := map[string]bool{}
	for _, a := range knowledgeBase {
		seen[a.Category] = true
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}
