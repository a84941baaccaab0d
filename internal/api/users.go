package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/dataexplorer/internal/query"
)

// Seed count bounds accepted by the server.
const (
	MinSeedCount     = 1
	MaxSeedCount     = 1000
	DefaultSeedCount = 100
)

// Endpoint paths. The trailing slashes match the server's routes.
const (
	pathUsers       = "/users/"
	pathDepartments = "/departments/"
	pathRoles       = "/roles/"
	pathSeed        = "/seed/"
	pathHealth      = "/health/"
	pathCache       = "/cache/"
)

// errMissingUsers is wrapped in a DecodeError when a list response has no users field.
var errMissingUsers = errors.New(`missing "users" field`)

// UsersParams builds the query parameters for a user-list request.
// The 1-based page becomes a skip/limit pair; empty filters are omitted.
func UsersParams(s query.State) url.Values {
	offset, limit := s.Params()
	params := url.Values{}
	params.Set("skip", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))
	if s.Search != "" {
		params.Set("search", s.Search)
	}
	if s.Department != "" {
		params.Set("department", s.Department)
	}
	if s.Role != "" {
		params.Set("role", s.Role)
	}
	if s.SortBy != "" {
		params.Set("sort_by", string(s.SortBy))
	}
	if s.SortOrder != "" {
		params.Set("sort_order", string(s.SortOrder))
	}
	return params
}

// ListUsers fetches the page of users described by s.
func (c *Client) ListUsers(ctx context.Context, s query.State) (*ResultPage, error) {
	var resp userListResponse
	if err := c.do(ctx, "list users", http.MethodGet, pathUsers, UsersParams(s), &resp); err != nil {
		return nil, err
	}
	if resp.Users == nil {
		return nil, &DecodeError{Op: "list users", Err: errMissingUsers}
	}

	return &ResultPage{
		Items:      *resp.Users,
		TotalItems: resp.Total,
		Page:       resp.Page,
		PageSize:   resp.Limit,
		TotalPages: resp.TotalPages,
	}, nil
}

// ListDepartments returns the distinct departments, sorted.
func (c *Client) ListDepartments(ctx context.Context) ([]string, error) {
	var items []departmentItem
	if err := c.do(ctx, "list departments", http.MethodGet, pathDepartments, nil, &items); err != nil {
		return nil, err
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		values = append(values, item.Department)
	}
	return query.NormalizeOptions(values), nil
}

// ListRoles returns the distinct roles, sorted.
func (c *Client) ListRoles(ctx context.Context) ([]string, error) {
	var items []roleItem
	if err := c.do(ctx, "list roles", http.MethodGet, pathRoles, nil, &items); err != nil {
		return nil, err
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		values = append(values, item.Role)
	}
	return query.NormalizeOptions(values), nil
}

// FilterOptions fetches departments and roles concurrently.
func (c *Client) FilterOptions(ctx context.Context) (query.FilterOptions, error) {
	var opts query.FilterOptions

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		departments, err := c.ListDepartments(gctx)
		opts.Departments = departments
		return err
	})
	g.Go(func() error {
		roles, err := c.ListRoles(gctx)
		opts.Roles = roles
		return err
	})

	if err := g.Wait(); err != nil {
		return query.FilterOptions{}, err
	}
	return opts, nil
}

// Seed asks the server to replace its data with count generated users and
// returns the server's confirmation message.
func (c *Client) Seed(ctx context.Context, count int) (string, error) {
	if count < MinSeedCount || count > MaxSeedCount {
		return "", ErrInvalidSeedCount
	}
	var resp messageResponse
	params := url.Values{"count": []string{strconv.Itoa(count)}}
	if err := c.do(ctx, "seed", http.MethodPost, pathSeed, params, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Health returns the server's reported status.
func (c *Client) Health(ctx context.Context) (string, error) {
	var resp healthResponse
	if err := c.do(ctx, "health", http.MethodGet, pathHealth, nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// ClearCache drops the server's response cache.
func (c *Client) ClearCache(ctx context.Context) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, "clear cache", http.MethodDelete, pathCache, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
