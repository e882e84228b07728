package middleware

import (
	"fmt"      // Rule validation errors
	"net/http" // HTTP methods and status codes
	"sort"     // Specificity ordering
	"strings"  // Path splitting

	"eventwave/internal/domain" // Role vocabulary

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Denials are logged at debug
)

// AnyMethod matches every HTTP method
const AnyMethod = "*"

type accessKind int

const (
	accessAuthenticated accessKind = iota // Any authenticated role
	accessPublic                          // No identity needed
	accessRoles                           // One of a fixed role set
)

// Access is the requirement a rule places on the caller
type Access struct {
	kind  accessKind
	roles map[domain.Role]struct{}
}

// Public lets anonymous callers through
func Public() Access { return Access{kind: accessPublic} }

// Authenticated requires an identity of any role
func Authenticated() Access { return Access{kind: accessAuthenticated} }

// Roles requires an identity holding one of roles
func Roles(roles ...domain.Role) Access {
	set := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return Access{kind: accessRoles, roles: set}
}

// Permits reports whether role satisfies the requirement; the caller has already been authenticated
func (a Access) Permits(role domain.Role) bool {
	if a.kind != accessRoles {
		return true
	}
	_, ok := a.roles[role]
	return ok
}

// IsPublic reports whether the requirement admits anonymous callers
func (a Access) IsPublic() bool { return a.kind == accessPublic }

// Rule binds a method and an Ant-style path pattern to an access requirement.
// In patterns "*" matches one path segment and "**" matches any number, including none.
type Rule struct {
	Method  string
	Pattern string
	Access  Access

	segments []string
}

// Policy is an immutable, specificity-ordered rule table
type Policy struct {
	rules []Rule
}

// NewPolicy validates rules and orders them so narrower patterns are tried first
func NewPolicy(rules []Rule) (*Policy, error) {
	compiled := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Method == "" {
			r.Method = AnyMethod
		}
		if !strings.HasPrefix(r.Pattern, "/") {
			return nil, fmt.Errorf("policy pattern %q must start with /", r.Pattern)
		}
		if r.Access.kind == accessRoles {
			if len(r.Access.roles) == 0 {
				return nil, fmt.Errorf("policy rule %s %s has an empty role set", r.Method, r.Pattern)
			}
			for role := range r.Access.roles {
				if !role.Valid() {
					return nil, fmt.Errorf("policy rule %s %s names unknown role %q", r.Method, r.Pattern, role)
				}
			}
		}
		r.segments = splitPath(r.Pattern)
		compiled = append(compiled, r)
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		a, b := compiled[i], compiled[j]
		if la, lb := literalCount(a.segments), literalCount(b.segments); la != lb {
			return la > lb
		}
		if da, db := hasDoubleWildcard(a.segments), hasDoubleWildcard(b.segments); da != db {
			return !da
		}
		return a.Method != AnyMethod && b.Method == AnyMethod
	})
	return &Policy{rules: compiled}, nil
}

// MustPolicy is NewPolicy for static tables known to be valid
func MustPolicy(rules []Rule) *Policy {
	p, err := NewPolicy(rules)
	if err != nil {
		panic(err)
	}
	return p
}

// Lookup returns the requirement of the first matching rule, or Authenticated when none match
func (p *Policy) Lookup(method, path string) Access {
	segments := splitPath(path)
	for _, r := range p.rules {
		if (r.Method == AnyMethod || r.Method == method) && matchSegments(r.segments, segments) {
			return r.Access
		}
	}
	return Authenticated()
}

// Authorize enforces the policy after BearerAuth has run.
// Missing identity on a protected route is 401; a wrong role is 403.
func Authorize(policy *Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		access := policy.Lookup(c.Request.Method, c.Request.URL.Path)
		if access.IsPublic() {
			c.Next()
			return
		}
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !access.Permits(identity.Role) {
			logrus.WithFields(logrus.Fields{
				"username":   identity.Username,
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"request_id": RequestID(c),
			}).Debug("access denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

// DefaultRules is the route table of the service
func DefaultRules() []Rule {
	anyRole := Roles(domain.RoleAttendee, domain.RoleOrganizer)
	organizer := Roles(domain.RoleOrganizer)
	attendee := Roles(domain.RoleAttendee)

	return []Rule{
		// Public
		{Method: http.MethodPost, Pattern: "/api/auth/login", Access: Public()},
		{Method: http.MethodPost, Pattern: "/api/auth/register", Access: Public()},
		{Method: http.MethodGet, Pattern: "/health", Access: Public()},

		// Profile
		{Method: http.MethodGet, Pattern: "/api/user/me", Access: anyRole},
		{Method: http.MethodPut, Pattern: "/api/user/update", Access: anyRole},

		// Organizer event management
		{Method: http.MethodPost, Pattern: "/api/organizer/events", Access: organizer},
		{Method: http.MethodGet, Pattern: "/api/organizer/events/**", Access: organizer},
		{Method: http.MethodPut, Pattern: "/api/organizer/events/**", Access: organizer},
		{Method: http.MethodDelete, Pattern: "/api/organizer/events/**", Access: organizer},

		// Attendee browsing; my-registrations is narrower than the browse rule
		{Method: AnyMethod, Pattern: "/api/attendee/events/my-registrations", Access: attendee},
		{Method: AnyMethod, Pattern: "/api/attendee/events/**", Access: anyRole},

		// Registrations
		{Method: AnyMethod, Pattern: "/api/registrations/attendees/**", Access: organizer},
		{Method: http.MethodGet, Pattern: "/api/registrations/**", Access: anyRole},
		{Method: http.MethodPost, Pattern: "/api/registrations/register/**", Access: anyRole},
		{Method: http.MethodPost, Pattern: "/api/registrations/unregister", Access: anyRole},

		// Wishlist
		{Method: AnyMethod, Pattern: "/api/attendee/wishlist/**", Access: anyRole},
	}
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// matchSegments implements Ant-style matching over path segments
func matchSegments(pattern, path []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	if pattern[0] == "**" {
		// Try consuming zero, one, two ... segments
		for i := 0; i <= len(path); i++ {
			if matchSegments(pattern[1:], path[i:]) {
				return true
			}
		}
		return false
	}
	if len(path) == 0 {
		return false
	}
	if pattern[0] != "*" && pattern[0] != path[0] {
		return false
	}
	return matchSegments(pattern[1:], path[1:])
}

func literalCount(segments []string) int {
	n := 0
	for _, s := range segments {
		if s != "*" && s != "**" {
			n++
		}
	}
	return n
}

func hasDoubleWildcard(segments []string) bool {
	for _, s := range segments {
		if s == "**" {
			return true
		}
	}
	return false
}
