package gamedata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// VillagerDetails holds the extra facts scraped from a villager's wiki page
// that the list API does not expose
type VillagerDetails struct {
	Name        string `json:"name"`
	Quote       string `json:"quote,omitempty"`
	Personality string `json:"personality,omitempty"`
	Birthday    string `json:"birthday,omitempty"`
	Species     string `json:"species,omitempty"`
}

// VillagerDetails scrapes a villager's wiki page for quiz flavor facts
func (s *Service) VillagerDetails(ctx context.Context, wikiBaseURL, name string) (*VillagerDetails, error) {
	pageURL := strings.TrimSuffix(wikiBaseURL, "/") + "/wiki/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	details, err := parseVillagerPage(resp.Body)
	if err != nil {
		return nil, err
	}
	if details.Name == "" {
		details.Name = name
	}
	return details, nil
}

// parseVillagerPage extracts details from the infobox of a villager page
func parseVillagerPage(r io.Reader) (*VillagerDetails, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	details := &VillagerDetails{
		Name:  clean(doc.Find(".infobox .infobox-title").First().Text()),
		Quote: clean(doc.Find(".infobox .infobox-quote").First().Text()),
	}

	doc.Find(".infobox tr").Each(func(_ int, row *goquery.Selection) {
		label := clean(row.Find("th").First().Text())
		value := clean(row.Find("td").First().Text())
		if value == "" {
			return
		}
		switch strings.ToLower(label) {
		case "personality":
			details.Personality = value
		case "birthday":
			details.Birthday = value
		case "species":
			details.Species = value
		}
	})

	return details, nil
}

func clean(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"“”`)
}
