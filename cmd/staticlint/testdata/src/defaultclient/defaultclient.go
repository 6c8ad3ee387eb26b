package defaultclient

import (
	"net/http"
	"net/url"
	"time"
)

type backend struct {
	client *http.Client
}

func (b *backend) Get(u string) (*http.Response, error) {
	return b.client.Get(u)
}

func calls() {
	_, _ = http.Get("http://localhost")                    // want "http.Get uses http.DefaultClient"
	_, _ = http.PostForm("http://localhost", url.Values{}) // want "http.PostForm uses http.DefaultClient"
	c := http.DefaultClient                                // want "http.DefaultClient used"
	_ = c

	b := &backend{client: &http.Client{Timeout: time.Second}}
	_, _ = b.Get("http://localhost")
	_, _ = b.client.Post("http://localhost", "text/plain", nil)
	_, _ = http.NewRequest(http.MethodGet, "http://localhost", nil)
}
