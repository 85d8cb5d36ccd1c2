package directory

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/mock"
)

// mockConn is a testify mock of Conn.
type mockConn struct {
	mock.Mock
}

func (m *mockConn) Bind(username, password string) error {
	return m.Called(username, password).Error(0)
}

func (m *mockConn) NTLMBind(domain, username, password string) error {
	return m.Called(domain, username, password).Error(0)
}

func (m *mockConn) Search(req *ldap.SearchRequest) (*ldap.SearchResult, error) {
	args := m.Called(req)

	result, _ := args.Get(0).(*ldap.SearchResult)

	return result, args.Error(1)
}

func (m *mockConn) Close() error {
	return m.Called().Error(0)
}

func newMockConn() *mockConn {
	conn := &mockConn{}
	conn.On("Close").Return(nil)

	return conn
}

// queueDialer hands out the queued connections in order and records the handles it was asked for.
type queueDialer struct {
	mu      sync.Mutex
	conns   []Conn
	handles []ServerHandle
	err     error
}

var errNoConn = errors.New("no connection queued")

func (d *queueDialer) Dial(handle ServerHandle) (Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handles = append(d.handles, handle)

	if d.err != nil {
		return nil, d.err
	}

	if len(d.conns) == 0 {
		return nil, errNoConn
	}

	conn := d.conns[0]
	d.conns = d.conns[1:]

	return conn, nil
}

func dialerOf(conns ...Conn) *queueDialer {
	return &queueDialer{conns: conns}
}

func searchResult(entries ...*ldap.Entry) *ldap.SearchResult {
	return &ldap.SearchResult{Entries: entries}
}

func aliceEntry() *ldap.Entry {
	return ldap.NewEntry("CN=Alice,OU=NYC,OU=OFFICES,DC=corp,DC=local", map[string][]string{
		"distinguishedName": {"CN=Alice,OU=NYC,OU=OFFICES,DC=corp,DC=local"},
		"cn":                {"Alice"},
		"givenName":         {"Alice"},
		"sn":                {"Smith"},
		"mail":              {"alice@corp.local"},
		"department":        {"IT"},
		"sAMAccountName":    {"alice"},
		"memberOf":          {"CN=Admins,OU=Groups,DC=corp,DC=local", "CN=Django_Superusers,OU=Groups,DC=corp,DC=local"},
	})
}

func assertClosed(t *testing.T, conns ...*mockConn) {
	t.Helper()

	for _, c := range conns {
		c.AssertCalled(t, "Close")
	}
}
