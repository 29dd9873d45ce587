package source

import (
	"context"
	"strings"
	"time"

	"newsrank/internal/article"
)

// DemoProvider serves a small built-in corpus. It is the terminal tier
// of the fallback chain and never fails, so the system always has
// something to show even with no keys and no network.
type DemoProvider struct {
	now func() time.Time
}

// NewDemoProvider creates the demo provider.
func NewDemoProvider() *DemoProvider {
	return &DemoProvider{now: time.Now}
}

// Name implements Provider.
func (p *DemoProvider) Name() string { return "demo" }

type demoSeed struct {
	title   string
	summary string
	topic   article.Topic
	ageHrs  int
}

var demoSeeds = []demoSeed{
	{"Researchers unveil low-power AI accelerator for edge devices", "A university team demonstrated a chip that runs transformer models at a fraction of typical energy cost, targeting phones and sensors.", article.TopicTechnology, 1},
	{"Open source database project reaches version 10", "The release brings incremental backups and a rewritten query planner, closing several long-standing performance issues.", article.TopicTechnology, 5},
	{"Quantum networking testbed links three city campuses", "Entangled photons were exchanged over existing fiber, a step toward metropolitan quantum networks.", article.TopicScience, 3},
	{"Marine biologists map deep-sea vents in the Pacific", "A month-long expedition catalogued dozens of new species around hydrothermal vents.", article.TopicScience, 9},
	{"Central bank holds rates steady as inflation cools", "Policymakers signaled patience, citing steady wage growth and easing goods prices.", article.TopicBusiness, 2},
	{"Logistics startup raises funding to automate customs paperwork", "The company says its filing engine cuts clearance times from days to hours.", article.TopicBusiness, 7},
	{"Underdogs clinch championship in extra time", "A stoppage-time winner capped a remarkable season for the promoted side.", article.TopicSports, 4},
	{"Marathon record falls on rain-soaked course", "The winner shaved nearly a minute off the previous best despite heavy conditions.", article.TopicSports, 11},
	{"Trial shows promise for once-weekly insulin", "Phase three results suggest comparable control with far fewer injections.", article.TopicHealth, 6},
	{"Hospitals adopt AI triage for emergency departments", "Early deployments report shorter waits for the most urgent cases.", article.TopicHealth, 13},
	{"Festival lineup announced with surprise headliner", "Organizers confirmed the reunion act fans had speculated about for months.", article.TopicEntertainment, 8},
	{"Indie film sweeps awards night", "The low-budget drama took best picture, director, and screenplay.", article.TopicEntertainment, 15},
	{"City council approves car-free downtown pilot", "The six-month trial closes four blocks to traffic and expands outdoor seating.", article.TopicGeneral, 10},
	{"Archivists digitize century-old newspaper collection", "The searchable archive opens previously inaccessible local history to the public.", article.TopicGeneral, 18},
}

// Fetch implements Provider. It filters the corpus by topic and search
// term and stamps publication times relative to now.
func (p *DemoProvider) Fetch(ctx context.Context, q Query) ([]article.Raw, error) {
	now := p.now().UTC()
	limit := q.limit()

	raws := make([]article.Raw, 0, len(demoSeeds))
	for _, s := range demoSeeds {
		if q.Topic != "" && s.topic != q.Topic {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(s.title+" "+s.summary), strings.ToLower(q.Search)) {
			continue
		}
		slug := strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
				return r
			case r == ' ':
				return '-'
			default:
				return -1
			}
		}, strings.ToLower(s.title))
		raws = append(raws, article.Raw{
			Title:       s.title,
			URL:         "https://demo.newsrank.local/articles/" + slug,
			Source:      "Demo Wire",
			PublishedAt: now.Add(-time.Duration(s.ageHrs) * time.Hour).Format(time.RFC3339),
			Summary:     s.summary,
			Topic:       string(s.topic),
		})
		if len(raws) >= limit {
			break
		}
	}
	return raws, nil
}
