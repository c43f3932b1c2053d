package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/lavkaplus/loyalty/internal/client"
	"github.com/lavkaplus/loyalty/internal/client/mocks"
	"go.uber.org/mock/gomock"
)

func TestAgent_NotifyDiscount(t *testing.T) {
	notice := client.DiscountNotice{ID: 10, TransactionID: 7, Amount: 300}

	testCases := []struct {
		TestName      string
		SetupMocks    func(httpClient *mocks.MockHTTPClient)
		ExpectedError error
	}{
		{
			TestName: "Success. Discount delivered #1",
			SetupMocks: func(httpClient *mocks.MockHTTPClient) {
				httpClient.EXPECT().Do(gomock.Any()).Return(&http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewReader(nil)),
				}, nil)
			},
			ExpectedError: nil,
		},
		{
			TestName: "Error. Agent timed out #2",
			SetupMocks: func(httpClient *mocks.MockHTTPClient) {
				httpClient.EXPECT().Do(gomock.Any()).Return(nil, context.DeadlineExceeded)
			},
			ExpectedError: client.ErrAgentTimeout,
		},
		{
			TestName: "Error. Agent asked to slow down #3",
			SetupMocks: func(httpClient *mocks.MockHTTPClient) {
				headers := http.Header{}
				headers.Set("Retry-After", "1")
				httpClient.EXPECT().Do(gomock.Any()).Return(&http.Response{
					StatusCode: http.StatusTooManyRequests,
					Header:     headers,
					Body:       io.NopCloser(bytes.NewReader(nil)),
				}, nil)
			},
			ExpectedError: &client.RateLimitError{RetryAfter: time.Second},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			httpClient := mocks.NewMockHTTPClient(ctrl)
			tc.SetupMocks(httpClient)

			agent := &Agent{
				Client:  client.NewClient(httpClient),
				Limiter: client.NewRateLimiter(),
				Timeout: 3 * time.Second,
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			err := agent.NotifyDiscount(ctx, "http://agent.local", notice)

			if err != nil && tc.ExpectedError == nil {
				t.Errorf("Expected no error, got '%v'", err)
			} else if err == nil && tc.ExpectedError != nil {
				t.Errorf("Expected error, got none")
			} else if err != nil && err.Error() != tc.ExpectedError.Error() {
				t.Errorf("Expected error: '%v', got: '%v'", tc.ExpectedError, err)
			}

			var rateLimitErr *client.RateLimitError
			if errors.As(err, &rateLimitErr) {
				expected := tc.ExpectedError.(*client.RateLimitError)
				if rateLimitErr.RetryAfter != expected.RetryAfter {
					t.Errorf("Expected RetryAfter %v, got %v", expected.RetryAfter, rateLimitErr.RetryAfter)
				}
			}
		})
	}
}
