package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MisterMaks/rdrt-client/internal/app"
	"github.com/MisterMaks/rdrt-client/internal/environment"
	"github.com/MisterMaks/rdrt-client/internal/httpclient"
)

// Query parameters of the links list.
const (
	PageKey     string = "page"
	PageSizeKey string = "page_size"
)

// ShortenerClient talks to the shortener backend.
// Every call attaches the token current at call time, if any.
type ShortenerClient struct {
	HTTP    *httpclient.Client
	BaseURL string
}

// NewShortenerClient creates *ShortenerClient.
func NewShortenerClient(env environment.Environment, httpClient *http.Client, tokens httpclient.TokenSourceInterface) *ShortenerClient {
	return &ShortenerClient{
		HTTP:    httpclient.New(httpClient, tokens),
		BaseURL: env.ShortenerAPIURL(),
	}
}

// Shorten creates short link for rawURL. rawURL must be absolute.
func (sc *ShortenerClient) Shorten(ctx context.Context, rawURL string) (*app.ShortenResult, error) {
	body, err := httpclient.JSONBody(app.ShortenRequest{URL: rawURL})
	if err != nil {
		return nil, err
	}

	var result app.ShortenResult
	err = sc.HTTP.Do(ctx, httpclient.Request{
		Method:        http.MethodPost,
		URL:           sc.BaseURL + "/shorten",
		Body:          body,
		ContentType:   httpclient.ApplicationJSONKey,
		Authenticated: true,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats returns usage stats of the link. Shape depends on caller privilege.
func (sc *ShortenerClient) Stats(ctx context.Context, code string) (*app.LinkStats, error) {
	var stats app.LinkStats
	err := sc.HTTP.Do(ctx, httpclient.Request{
		Method:        http.MethodGet,
		URL:           sc.BaseURL + "/stats/" + url.PathEscape(code),
		Authenticated: true,
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// MyURLs returns one page of the caller's links.
func (sc *ShortenerClient) MyURLs(ctx context.Context, page, pageSize int) (*app.LinkListPage, error) {
	query := url.Values{}
	query.Set(PageKey, strconv.Itoa(page))
	query.Set(PageSizeKey, strconv.Itoa(pageSize))

	var list app.LinkListPage
	err := sc.HTTP.Do(ctx, httpclient.Request{
		Method:        http.MethodGet,
		URL:           sc.BaseURL + "/me/urls?" + query.Encode(),
		Authenticated: true,
	}, &list)
	if err != nil {
		return nil, err
	}
	if list.Items == nil {
		list.Items = []app.LinkSummary{}
	}
	return &list, nil
}

// UpdateLink changes is_active and/or expires_at of the link.
func (sc *ShortenerClient) UpdateLink(ctx context.Context, code string, patch app.LinkPatch) (*app.LinkSummary, error) {
	body, err := httpclient.JSONBody(patch)
	if err != nil {
		return nil, err
	}

	var link app.LinkSummary
	err = sc.HTTP.Do(ctx, httpclient.Request{
		Method:        http.MethodPatch,
		URL:           sc.BaseURL + "/links/" + url.PathEscape(code),
		Body:          body,
		ContentType:   httpclient.ApplicationJSONKey,
		Authenticated: true,
	}, &link)
	if err != nil {
		return nil, err
	}
	return &link, nil
}
