package transform

import "github.com/insomnimus/slackfmt/ast"

// IDMaps holds the ID→display-name tables for MapIDs. A zero-value map
// field means "no mapping for that variant"; non-matching IDs are left
// unchanged.
type IDMaps struct {
	Users      map[string]string
	Channels   map[string]string
	Usergroups map[string]string
}

// MapIDs replaces mention nodes whose ID appears in maps with a copy
// carrying the matching display name. Non-matching IDs, and every other
// node kind, pass through untouched.
func MapIDs(doc *ast.Document, maps IDMaps) (*ast.Document, error) {
	return ast.Walk(doc, &idMapVisitor{maps: maps})
}

type idMapVisitor struct {
	maps IDMaps
}

func (v *idMapVisitor) VisitBlock(b ast.Block) (ast.Block, error) {
	return b, nil
}

func (v *idMapVisitor) VisitInline(in ast.Inline) (ast.Inline, error) {
	switch n := in.(type) {
	case *ast.UserMention:
		if name, ok := v.maps.Users[n.UserID]; ok {
			return &ast.UserMention{UserID: n.UserID, Username: name}, nil
		}
	case *ast.ChannelMention:
		if name, ok := v.maps.Channels[n.ChannelID]; ok {
			return &ast.ChannelMention{ChannelID: n.ChannelID, ChannelName: name}, nil
		}
	case *ast.UsergroupMention:
		if name, ok := v.maps.Usergroups[n.UsergroupID]; ok {
			return &ast.UsergroupMention{UsergroupID: n.UsergroupID, UsergroupName: name}, nil
		}
	}
	return in, nil
}
