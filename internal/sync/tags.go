package sync

import (
	"strings"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/dto"
)

// DeriveTags builds the tag set attached to a new customer: the traffic
// source, paid-channel flags from click ids, the UTM source, and one tag per
// service of interest.
func DeriveTags(req *dto.CreateCustomerRequest) []string {
	var tags []string

	add := func(tag string) {
		if tag == "" {
			return
		}
		for _, t := range tags {
			if t == tag {
				return
			}
		}
		tags = append(tags, tag)
	}

	add(slugify(req.Source))
	if req.GCLID != "" {
		add("google-ads")
	}
	if req.FBCLID != "" {
		add("facebook-ads")
	}
	add(slugify(req.UTMSource))
	for _, service := range req.ServicesInterested {
		add(slugify(service))
	}

	return tags
}

// scoreLead assigns the initial lead score for a new customer
func scoreLead(req *dto.CreateCustomerRequest) int {
	score := 50
	if req.GCLID != "" || req.FBCLID != "" {
		score += 20
	}
	if req.EstimatedValue > 0 {
		score += 15
	}
	if len(req.ServicesInterested) > 0 {
		score += 10
	}
	if req.Phone != "" {
		score += 5
	}
	return score
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "-")
}
