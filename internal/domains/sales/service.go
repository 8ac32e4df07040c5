// Package sales is a demo domain: lead qualification and product
// recommendations. Lead storage is in-memory and resets on restart.
package sales

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Lead is one qualified sales lead.
type Lead struct {
	LeadID      string   `json:"lead_id"`
	Company     string   `json:"company"`
	Budget      string   `json:"budget"`
	Timeline    string   `json:"timeline"`
	TeamSize    int      `json:"team_size"`
	Score       int      `json:"score"`
	Category    string   `json:"category"`
	NextSteps   []string `json:"next_steps"`
	QualifiedAt string   `json:"qualified_at"`
}

// LeadService stores leads in memory.
type LeadService struct {
	mu      sync.Mutex
	leads   map[string]*Lead
	counter int
}

// NewLeadService starts lead numbering at LEAD-5001.
func NewLeadService() *LeadService {
	return &LeadService{
		leads:   make(map[string]*Lead),
		counter: 5000,
	}
}

func containsAny(s string, markers ...string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// scoreLead computes the 0-100 score and its category. Budget contributes up
// to 40 points, timeline up to 30, team size up to 30. Hot is 70+, warm 40+,
// everything else cold.
func scoreLead(budget, timeline string, teamSize int) (int, string) {
	score := 0

	b := strings.ToLower(budget)
	switch {
	case containsAny(b, "100k", "100000", "million"):
		score += 40
	case containsAny(b, "50k", "50000"):
		score += 30
	case containsAny(b, "10k", "10000", "20k", "30k"):
		score += 20
	default:
		score += 10
	}

	tl := strings.ToLower(timeline)
	switch {
	case containsAny(tl, "asap", "immediately", "urgent", "1 month", "2 month"):
		score += 30
	case containsAny(tl, "3 month", "quarter", "q1", "q2"):
		score += 20
	case containsAny(tl, "6 month", "half year"):
		score += 10
	default:
		score += 5
	}

	switch {
	case teamSize >= 100:
		score += 30
	case teamSize >= 20:
		score += 20
	case teamSize >= 5:
		score += 10
	default:
		score += 5
	}

	switch {
	case score >= 70:
		return score, "hot"
	case score >= 40:
		return score, "warm"
	default:
		return score, "cold"
	}
}

var nextStepsByCategory = map[string][]string{
	"hot": {
		"Schedule demo with sales engineer",
		"Prepare custom proposal",
		"Arrange executive meeting",
		"Fast-track contract review",
	},
	"warm": {
		"Send product information packet",
		"Schedule discovery call",
		"Share case studies",
		"Provide pricing details",
	},
	"cold": {
		"Add to nurture campaign",
		"Share educational content",
		"Schedule follow-up in 3 months",
		"Offer free trial or demo",
	},
}

// Qualify scores a new lead and stores it. teamSize defaults to 1.
func (s *LeadService) Qualify(company, budget, timeline string, teamSize int) *Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	if teamSize < 1 {
		teamSize = 1
	}
	s.counter++
	score, category := scoreLead(budget, timeline, teamSize)

	lead := &Lead{
		LeadID:      fmt.Sprintf("LEAD-%d", s.counter),
		Company:     company,
		Budget:      budget,
		Timeline:    timeline,
		TeamSize:    teamSize,
		Score:       score,
		Category:    category,
		NextSteps:   nextStepsByCategory[category],
		QualifiedAt: time.Now().Format(time.RFC3339),
	}
	s.leads[lead.LeadID] = lead
	return lead
}

// Get returns a previously qualified lead.
func (s *LeadService) Get(leadID string) (*Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[leadID]
	if !ok {
		return nil, fmt.Errorf("lead %s not found", leadID)
	}
	return lead, nil
}

// Product is one catalog entry.
type Product struct {
	ProductID    string   `json:"product_id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Price        int      `json:"price"`
	Features     []string `json:"features"`
	InStock      bool     `json:"in_stock"`
	LeadTimeDays int      `json:"lead_time_days"`
	MatchScore   float64  `json:"match_score,omitempty"`
}

var productCatalog = map[string]Product{
	"PROD-ENT-001": {
		ProductID: "PROD-ENT-001", Name: "Enterprise Suite Pro", Category: "Enterprise", Price: 99999,
		Features: []string{
			"Unlimited users", "Advanced analytics", "24/7 premium support",
			"Custom integrations", "Dedicated account manager", "SLA guarantee",
		},
		InStock: true,
	},
	"PROD-ENT-002": {
		ProductID: "PROD-ENT-002", Name: "Enterprise Platform", Category: "Enterprise", Price: 149999,
		Features: []string{
			"Everything in Pro", "Multi-region deployment", "Advanced security features",
			"Compliance certifications", "Custom development support",
		},
		InStock: true,
	},
	"PROD-SMB-001": {
		ProductID: "PROD-SMB-001", Name: "Business Standard", Category: "SMB", Price: 19999,
		Features: []string{
			"Up to 100 users", "Standard analytics", "Email support",
			"API access", "Standard integrations",
		},
		InStock: true,
	},
	"PROD-SMB-002": {
		ProductID: "PROD-SMB-002", Name: "Business Plus", Category: "SMB", Price: 29999,
		Features: []string{
			"Up to 100 users", "Advanced analytics", "Priority support",
			"Custom workflows", "Extended integrations",
		},
		InStock: false, LeadTimeDays: 14,
	},
	"PROD-START-001": {
		ProductID: "PROD-START-001", Name: "Starter Package", Category: "Starter", Price: 4999,
		Features: []string{
			"Up to 10 users", "Basic analytics", "Community support", "Core features",
		},
		InStock: true,
	},
	"PROD-START-002": {
		ProductID: "PROD-START-002", Name: "Starter Plus", Category: "Starter", Price: 7999,
		Features: []string{
			"Up to 10 users", "Standard analytics", "Email support",
			"Enhanced features", "Basic integrations",
		},
		InStock: true,
	},
}

// GetCatalog lists products, optionally filtered by category, sorted by
// price descending.
func GetCatalog(category string) []Product {
	var out []Product
	for _, p := range productCatalog {
		if category == "" || strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	return out
}

// Recommend scores products against a free-text requirements description.
func Recommend(requirements string, maxResults int) []Product {
	if maxResults <= 0 {
		maxResults = 3
	}
	req := strings.ToLower(requirements)

	var scored []Product
	for _, p := range productCatalog {
		score := 0.0

		switch p.Category {
		case "Enterprise":
			if strings.Contains(req, "enterprise") {
				score += 0.4
			}
		case "SMB":
			if containsAny(req, "smb", "business", "medium") {
				score += 0.4
			}
		case "Starter":
			if containsAny(req, "starter", "small", "basic") {
				score += 0.4
			}
		}

		for _, feature := range p.Features {
			for _, word := range strings.Fields(strings.ToLower(feature)) {
				if strings.Contains(req, word) {
					score += 0.1
					break
				}
			}
		}

		if containsAny(req, "100", "large") {
			if p.Category == "Enterprise" {
				score += 0.2
			}
		} else if containsAny(req, "10", "small", "few") && p.Category == "Starter" {
			score += 0.2
		}

		if score > 0 {
			if score > 1.0 {
				score = 1.0
			}
			p.MatchScore = score
			scored = append(scored, p)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchScore != scored[j].MatchScore {
			return scored[i].MatchScore > scored[j].MatchScore
		}
		return scored[i].ProductID < scored[j].ProductID
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}

// Inventory is stock information for one product.
type Inventory struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	InStock      bool   `json:"in_stock"`
	LeadTimeDays int    `json:"lead_time_days"`
	Availability string `json:"availability"`
}

// CheckInventory reports availability for one product.
func CheckInventory(productID string) (Inventory, error) {
	p, ok := productCatalog[productID]
	if !ok {
		return Inventory{}, fmt.Errorf("product %s not found in catalog", productID)
	}

	availability := "In Stock"
	if !p.InStock {
		availability = fmt.Sprintf("%d days", p.LeadTimeDays)
	}
	return Inventory{
		ProductID:    p.ProductID,
		Name:         p.Name,
		InStock:      p.InStock,
		LeadTimeDays: p.LeadTimeDays,
		Availability: availability,
	}, nil
}
