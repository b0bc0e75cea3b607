package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetJSON 带重试的GET+JSON解码（各源适配器共用）
// retries 为失败后的追加尝试次数，0表示只请求一次
func GetJSON(ctx context.Context, client *http.Client, url string, retries int, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		lastErr = doGetJSON(ctx, client, url, out)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func doGetJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("非200响应: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
