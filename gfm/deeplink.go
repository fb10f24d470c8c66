package gfm

import (
	"net/url"
	"strings"

	"github.com/insomnimus/slackfmt/ast"
)

const deepLinkScheme = "slack"

// parseDeepLink recognizes a `slack://` URL and turns it into the
// matching mention node. label is the link's
// rendered-inline text, used for UserMention's Username field (with any
// leading '@' stripped) when the URL itself carries no ?name=.
func parseDeepLink(rawURL, label string) (ast.Inline, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != deepLinkScheme {
		return nil, false
	}
	q := u.Query()
	name := q.Get("name")
	switch u.Host {
	case "user":
		id := q.Get("id")
		if id == "" {
			return nil, false
		}
		if name == "" {
			name = strings.TrimPrefix(label, "@")
		}
		return &ast.UserMention{UserID: id, Username: name}, true
	case "channel":
		id := q.Get("id")
		if id == "" {
			return nil, false
		}
		if name == "" {
			name = strings.TrimPrefix(label, "#")
		}
		return &ast.ChannelMention{ChannelID: id, ChannelName: name}, true
	case "usergroup":
		id := q.Get("id")
		if id == "" {
			return nil, false
		}
		if name == "" {
			name = strings.TrimPrefix(label, "@")
		}
		return &ast.UsergroupMention{UsergroupID: id, UsergroupName: name}, true
	case "broadcast":
		r := ast.BroadcastRange(q.Get("range"))
		if !r.Valid() {
			return nil, false
		}
		return &ast.Broadcast{Range: r}, true
	default:
		return nil, false
	}
}

// buildDeepLink is parseDeepLink's inverse, used by the renderer.
// teamID is omitted from the URL when empty. The query string is built
// by hand in the fixed order team, id, name rather than through
// url.Values.Encode (which sorts keys alphabetically), since consumers
// of these links expect that exact order.
func buildDeepLink(kind, id, teamID, name string) string {
	var params []string
	if teamID != "" {
		params = append(params, "team="+url.QueryEscape(teamID))
	}
	params = append(params, "id="+url.QueryEscape(id))
	if name != "" {
		params = append(params, "name="+url.QueryEscape(name))
	}
	return deepLinkScheme + "://" + kind + "?" + strings.Join(params, "&")
}

func buildBroadcastLink(r ast.BroadcastRange) string {
	q := url.Values{}
	q.Set("range", string(r))
	return deepLinkScheme + "://broadcast?" + q.Encode()
}
