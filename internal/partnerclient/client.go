// Package partnerclient implements the external partner surface over HTTP:
// the customer/branch directory, the teller authorization service, the
// accounting poster and the notification gateway.
package partnerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/pkg/configpkg"
	"github.com/corebank/branchledger/pkg/errorspkg"
)

// Client calls the partner services. It satisfies the Partners interface of
// the cash and transfer services.
type Client struct {
	http          *http.Client
	directoryURL  string
	accountingURL string
	notifierURL   string
}

// New returns a partner Client configured from the application config.
func New(config configpkg.Config) *Client {
	return &Client{
		http:          &http.Client{Timeout: config.PartnerTimeout},
		directoryURL:  config.DirectoryBaseURL,
		accountingURL: config.AccountingBaseURL,
		notifierURL:   config.NotifierBaseURL,
	}
}

func (c *Client) get(ctx context.Context, url string, out interface{}) (int, error) {
	l := zerolog.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	res, err := c.http.Do(req)
	if err != nil {
		l.Error().Err(err).Str("url", url).Send()
		return 0, errorspkg.ErrPartnerUnavailable
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return res.StatusCode, nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		l.Error().Err(err).Str("url", url).Send()
		return 0, errorspkg.ErrPartnerUnavailable
	}

	return res.StatusCode, nil
}

func (c *Client) post(ctx context.Context, url string, in, out interface{}) (int, error) {
	l := zerolog.Ctx(ctx)

	body, err := json.Marshal(in)
	if err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		l.Error().Err(err).Str("url", url).Send()
		return 0, errorspkg.ErrPartnerUnavailable
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK || out == nil {
		return res.StatusCode, nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		l.Error().Err(err).Str("url", url).Send()
		return 0, errorspkg.ErrPartnerUnavailable
	}

	return res.StatusCode, nil
}

// Customer returns the directory record of the given customer.
func (c *Client) Customer(ctx context.Context, id int64) (domain.Customer, error) {
	var customer domain.Customer

	status, err := c.get(ctx, fmt.Sprintf("%s/customers/%d", c.directoryURL, id), &customer)
	if err != nil {
		return customer, err
	}

	switch status {
	case http.StatusOK:
		return customer, nil
	case http.StatusNotFound:
		return customer, domain.ErrCustomerNotFound
	default:
		return customer, errorspkg.ErrPartnerUnavailable
	}
}

// Branch returns the directory record of the given branch.
func (c *Client) Branch(ctx context.Context, id int32) (domain.Branch, error) {
	var branch domain.Branch

	status, err := c.get(ctx, fmt.Sprintf("%s/branches/%d", c.directoryURL, id), &branch)
	if err != nil {
		return branch, err
	}

	switch status {
	case http.StatusOK:
		return branch, nil
	case http.StatusNotFound:
		return branch, domain.ErrBranchNotFound
	default:
		return branch, errorspkg.ErrPartnerUnavailable
	}
}

// AuthorizeTeller asks the authorization service whether the teller may run
// the operation.
func (c *Client) AuthorizeTeller(ctx context.Context, req domain.TellerAuthRequest) (domain.TellerAuthDecision, error) {
	var decision domain.TellerAuthDecision

	status, err := c.post(ctx, c.directoryURL+"/tellers/authorize", req, &decision)
	if err != nil {
		return decision, err
	}

	if status != http.StatusOK {
		return decision, errorspkg.ErrPartnerUnavailable
	}

	return decision, nil
}

// SubmitPosting submits the accounting posting of a completed transaction.
func (c *Client) SubmitPosting(ctx context.Context, req domain.PostingRequest) error {
	status, err := c.post(ctx, c.accountingURL+"/postings", req, nil)
	if err != nil {
		return err
	}

	if status != http.StatusOK && status != http.StatusCreated {
		return errorspkg.ErrPartnerUnavailable
	}

	return nil
}

// Notify sends the customer notification through the gateway.
func (c *Client) Notify(ctx context.Context, msg domain.Notification) error {
	status, err := c.post(ctx, c.notifierURL+"/notifications", msg, nil)
	if err != nil {
		return err
	}

	if status != http.StatusOK && status != http.StatusAccepted {
		return errorspkg.ErrPartnerUnavailable
	}

	return nil
}
