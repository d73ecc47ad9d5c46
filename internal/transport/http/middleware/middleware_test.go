package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"brewbuy/internal/core/auth"
	"brewbuy/internal/transport/http/ez"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDEchoesOrGenerates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "abc")
	w := serve(r, req)
	assert.Equal(t, "abc", w.Header().Get(KeyRequestID))
	assert.Equal(t, "abc", w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(KeyRequestID), 36)
}

func TestAuthJWTSetsIdentity(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("k"), Issuer: "brewbuy", TTL: time.Minute}
	r := gin.New()
	r.GET("/", AuthJWT(j, auth.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, ez.Username(c)+"/"+ez.Role(c))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"code":401,"msg":"missing token","data":{}}`, w.Body.String())

	userTok, err := j.Issue("bob", "7", auth.RoleUser)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+userTok)
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)

	adminTok, err := j.Issue("root", "", auth.RoleAdmin)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "root/admin", w.Body.String())
}

func TestRateLimitPerIPIsolatesClients(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitPerIP(rate.Limit(0.001), 1))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	from := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		return serve(r, req).Code
	}
	assert.Equal(t, http.StatusOK, from("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, from("10.0.0.1"))
	assert.Equal(t, http.StatusOK, from("10.0.0.2"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			from("10.0.1.1")
		}()
	}
	wg.Wait()
}

func TestMaskQuery(t *testing.T) {
	q := url.Values{"token": {"t"}, "Password": {"p"}, "page": {"2"}}
	m := maskQuery(q)
	assert.Equal(t, []string{"****"}, m["token"])
	assert.Equal(t, []string{"****"}, m["Password"])
	assert.Equal(t, []string{"2"}, m["page"])
}
