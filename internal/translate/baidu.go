// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/patent-intake/pkg/types"
)

// baiduAPIBase is the Baidu translation endpoint. Declared as a var so
// tests can substitute an httptest server.
var baiduAPIBase = "https://api.fanyi.baidu.com/api/trans/vip/translate"

// Baidu calls the Baidu fanyi REST API. Requests are signed with
// MD5(appID + query + salt + secret) per the API's app-id scheme.
type Baidu struct {
	client *http.Client
	appID  string
	secret string
	from   string
	to     string
}

// NewBaidu creates the Baidu engine from the translate configuration.
func NewBaidu(client *http.Client, cfg types.TranslateConfig) *Baidu {
	from := cfg.From
	if from == "" {
		from = "zh"
	}
	to := cfg.To
	if to == "" {
		to = "en"
	}
	return &Baidu{
		client: client,
		appID:  cfg.BaiduAppID,
		secret: cfg.BaiduSecretKey,
		from:   from,
		to:     to,
	}
}

// Name returns the engine identifier.
func (b *Baidu) Name() string { return "baidu" }

type baiduResponse struct {
	ErrorCode   string `json:"error_code"`
	TransResult []struct {
		Dst string `json:"dst"`
	} `json:"trans_result"`
}

// Translate sends one signed translation request. Segment results are
// joined with newlines.
func (b *Baidu) Translate(ctx context.Context, text string) (string, error) {
	if b.appID == "" || b.secret == "" {
		return "", fmt.Errorf("baidu engine: credentials not configured")
	}

	salt := strconv.Itoa(rand.IntN(32769) + 32768)
	sign := fmt.Sprintf("%x", md5.Sum([]byte(b.appID+text+salt+b.secret)))

	params := url.Values{
		"q":     {text},
		"from":  {b.from},
		"to":    {b.to},
		"appid": {b.appID},
		"salt":  {salt},
		"sign":  {sign},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		baiduAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("baidu engine: creating request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("baidu engine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("baidu engine: HTTP %d", resp.StatusCode)
	}

	var br baiduResponse
	if err := json.NewDecoder(resp.Body).Decode(&br); err != nil {
		return "", fmt.Errorf("baidu engine: parsing response: %w", err)
	}
	if len(br.TransResult) == 0 {
		if br.ErrorCode != "" {
			return "", fmt.Errorf("baidu engine: error code %s", br.ErrorCode)
		}
		return "", fmt.Errorf("baidu engine: response missing trans_result")
	}

	segments := make([]string, 0, len(br.TransResult))
	for _, seg := range br.TransResult {
		segments = append(segments, seg.Dst)
	}
	return strings.Join(segments, "\n"), nil
}
