package customersupport

import (
	"strings"
	"testing"
)

func TestTicketLifecycle(t *testing.T) {
	svc := NewTicketService()

	ticket := svc.Create("Login broken", "Cannot log in since yesterday", "high")
	if ticket.TicketID != "TKT-1001" {
		t.Errorf("TicketID = %q, want TKT-1001", ticket.TicketID)
	}
	if ticket.Status != "open" || ticket.Priority != "high" {
		t.Errorf("ticket = %+v", ticket)
	}
	if ticket.CreatedAt == "" || ticket.UpdatedAt == "" {
		t.Error("timestamps must be set")
	}

	second := svc.Create("Billing question", "Charged twice", "")
	if second.TicketID != "TKT-1002" {
		t.Errorf("TicketID = %q, want TKT-1002", second.TicketID)
	}
	if second.Priority != "medium" {
		t.Errorf("default priority = %q, want medium", second.Priority)
	}

	updated, err := svc.Update("TKT-1001", "resolved")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != "resolved" {
		t.Errorf("Status = %q", updated.Status)
	}
}

func TestTicketUpdateUnknown(t *testing.T) {
	svc := NewTicketService()
	if _, err := svc.Update("TKT-9999", "closed"); err == nil {
		t.Fatal("expected error for unknown ticket")
	}
}

func TestTicketSearch(t *testing.T) {
	svc := NewTicketService()
	svc.Create("Login broken", "Cannot log in", "high")
	svc.Create("Billing question", "Charged twice", "low")

	hits := svc.Search("login")
	if len(hits) != 1 || hits[0].Title != "Login broken" {
		t.Errorf("hits = %+v", hits)
	}

	// Search by ID fragment.
	hits = svc.Search("tkt-1002")
	if len(hits) != 1 || hits[0].Title != "Billing question" {
		t.Errorf("hits = %+v", hits)
	}

	if hits := svc.Search("nonexistent"); len(hits) != 0 {
		t.Errorf("hits = %+v, want none", hits)
	}
}

func TestSearchKnowledgeBase(t *testing.T) {
	hits := SearchKnowledgeBase("password", 5)
	if len(hits) == 0 {
		t.Fatal("no hits for password")
	}
	// KB001's title contains "password", so it must rank first with a
	// capped score.
	if hits[0].ArticleID != "KB001" {
		t.Errorf("top hit = %+v", hits[0])
	}
	if hits[0].RelevanceScore != 1.0 {
		t.Errorf("score = %v, want capped at 1.0", hits[0].RelevanceScore)
	}

	for i := 1; i < len(hits); i++ {
		if hits[i].RelevanceScore > hits[i-1].RelevanceScore {
			t.Errorf("hits not sorted by relevance: %+v", hits)
		}
	}
}

func TestSearchKnowledgeBaseMaxResults(t *testing.T) {
	hits := SearchKnowledgeBase("account", 1)
	if len(hits) != 1 {
		t.Errorf("len = %d, want 1", len(hits))
	}
}

func TestSearchKnowledgeBaseNoMatch(t *testing.T) {
	if hits := SearchKnowledgeBase("quantum chromodynamics", 5); len(hits) != 0 {
		t.Errorf("hits = %+v, want none", hits)
	}
}

func TestGetArticle(t *testing.T) {
	a, err := GetArticle("KB003")
	if err != nil {
		t.Fatalf("GetArticle: %v", err)
	}
	if a.Title != "Troubleshooting Login Issues" {
		t.Errorf("Title = %q", a.Title)
	}
	if !strings.Contains(a.Content, "Account Locked") {
		t.Error("full content missing")
	}

	if _, err := GetArticle("KB999"); err == nil {
		t.Fatal("expected error for unknown article")
	}
}

func TestListArticleCategories(t *testing.T) {
	cats := ListArticleCategories()
	want := []string{"account", "getting-started", "troubleshooting"}
	if len(cats) != len(want) {
		t.Fatalf("cats = %v", cats)
	}
	for i, c := range want {
		if cats[i] != c {
			t.Errorf("cats[%d] = %q, want %q", i, cats[i], c)
		}
	}
}
