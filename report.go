package jsonassert

// TestingT is the subset of *testing.T used to report failures. It matches
// testify's assert.TestingT, so the same fakes work for both.
type TestingT interface {
	Errorf(format string, args ...any)
}

type tHelper interface{ Helper() }

type failNower interface{ FailNow() }

type logfer interface {
	Logf(format string, args ...any)
}

// reporter forwards issues to the TestingT. It is shared by a root session and
// every session derived from it.
type reporter struct {
	t   TestingT
	cfg Config
}

func (r *reporter) helper() {
	if h, ok := r.t.(tHelper); ok {
		h.Helper()
	}
}

func (r *reporter) report(it Issue) {
	r.helper()
	r.t.Errorf("%s", it.Report())
	if r.cfg.FailFast {
		if fn, ok := r.t.(failNower); ok {
			fn.FailNow()
		}
	}
}

// warn logs non-fatal issues when the TestingT supports Logf.
func (r *reporter) warn(it Issue) {
	r.helper()
	if l, ok := r.t.(logfer); ok {
		l.Logf("jsonassert: %s at %s: %s", it.Code, it.Path, it.Message)
	}
}

// session holds the state shared by object, array and value assertions. A
// session without a node is dead: its checks are no-ops.
type session struct {
	r      *reporter
	parent *session
	path   pathRef
	node   *Node
	issues Issues
}

func (s *session) child(p pathRef, n *Node) session {
	return session{r: s.r, parent: s, path: p, node: n}
}

func (s *session) alive() bool { return s != nil && s.node != nil }

// fail records the issue on this session and its ancestors, then reports it.
func (s *session) fail(it Issue) {
	s.r.helper()
	for p := s; p != nil; p = p.parent {
		p.issues = append(p.issues, it)
	}
	s.r.report(it)
}

// Err returns the issues raised by this session and the sessions derived from
// it, or nil.
func (s *session) Err() error {
	if len(s.issues) == 0 {
		return nil
	}
	return s.issues
}

// Failed reports whether any check on this session or a derived one failed.
func (s *session) Failed() bool { return len(s.issues) > 0 }

// Node returns the checked node, nil for a dead session.
func (s *session) Node() *Node { return s.node }
