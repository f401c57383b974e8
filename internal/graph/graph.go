// Package graph turns search results into the node and link sets used to draw
// the current user's network.
package graph

import (
	"strings"

	"github.com/hyperjump/kue/internal/models"
)

// NodeType is the role of a node relative to the current user.
type NodeType string

const (
	NodeUser     NodeType = "user"
	NodeDirect   NodeType = "direct"
	NodeIndirect NodeType = "indirect"
	NodeWeak     NodeType = "weak"
)

// Role categories assigned from job titles.
const (
	RoleEngineering = "Engineering"
	RoleProduct     = "Product"
	RoleDesign      = "Design"
	RoleBusiness    = "Business"
	RoleInvestor    = "Investor"
	RoleLeadership  = "Leadership"
)

const (
	userScore         = 100
	intermediaryScore = 30
)

// Node is one person in the graph.
type Node struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Type           NodeType `json:"type"`
	RelevanceScore int      `json:"relevance_score"`
	RoleCategory   string   `json:"role_category"`
}

// Link joins the current user to a connection.
type Link struct {
	Source   string                `json:"source"`
	Target   string                `json:"target"`
	Strength models.ConnectionType `json:"strength"`
	Value    int                   `json:"value"`
}

// Data is a complete graph.
type Data struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Build returns the graph for self and its connections: one user node, one node
// and link per connection, and one node per path intermediary not already present.
// Node ids are unique; a connection that was first seen as an intermediary takes
// over that node.
func Build(self models.Person, connections []*models.Connection) *Data {
	d := &Data{
		Nodes: []Node{newNode(self, NodeUser, userScore)},
		Links: []Link{},
	}
	index := map[string]int{self.ID: 0}

	for _, c := range connections {
		if c == nil || c.Person.ID == self.ID {
			continue
		}
		node := newNode(c.Person, NodeType(c.Type), c.RelevanceScore)
		if i, ok := index[c.Person.ID]; ok {
			d.Nodes[i] = node
		} else {
			index[c.Person.ID] = len(d.Nodes)
			d.Nodes = append(d.Nodes, node)
		}
		d.Links = append(d.Links, Link{
			Source:   self.ID,
			Target:   c.Person.ID,
			Strength: c.Type,
			Value:    linkValue(c.Type),
		})

		if c.Type != models.ConnectionIndirect {
			continue
		}
		for _, p := range c.Path {
			if _, ok := index[p.ID]; ok {
				continue
			}
			index[p.ID] = len(d.Nodes)
			d.Nodes = append(d.Nodes, newNode(p, NodeIndirect, intermediaryScore))
		}
	}
	return d
}

func newNode(p models.Person, t NodeType, score int) Node {
	return Node{
		ID:             p.ID,
		Name:           p.Name,
		Title:          p.Title,
		Company:        p.Company,
		Type:           t,
		RelevanceScore: score,
		RoleCategory:   RoleCategory(p.Title),
	}
}

func linkValue(t models.ConnectionType) int {
	switch t {
	case models.ConnectionDirect:
		return 3
	case models.ConnectionIndirect:
		return 2
	default:
		return 1
	}
}

// RoleCategory buckets a job title. Titles that match nothing are Leadership.
func RoleCategory(title string) string {
	t := strings.ToLower(title)
	switch {
	case containsAny(t, "engineer", "cto", "software"):
		return RoleEngineering
	case strings.Contains(t, "product"):
		return RoleProduct
	case strings.Contains(t, "design"):
		return RoleDesign
	case containsAny(t, "bd", "sales"):
		return RoleBusiness
	case containsAny(t, "investor", "partner", "capital"):
		return RoleInvestor
	default:
		return RoleLeadership
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
