package client

import (
	"context"
	"io"
	"net/url"
	"os"

	"github.com/jrsteele09/go-payvment/xmldoc"
	"github.com/pkg/errors"
)

// Format selects the response format for API calls. The platform only
// serves XML today.
type Format string

// FormatXML is the only supported response format.
const FormatXML Format = "xml"

const defaultOrdersCommand = "pullOrders"

func checkFormat(format Format) error {
	if format != FormatXML {
		return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	return nil
}

// Stores lists the merchant's stores.
func (s *Session) Stores(ctx context.Context, params Params, format Format) (*xmldoc.Document, error) {
	return s.fetchResource(ctx, ResourceStoresList, params, format)
}

// Orders queries the merchant's orders. With no parameters the platform's
// pullOrders command is issued, returning all orders for the retailer.
// Supplying any parameter replaces the default command entirely.
func (s *Session) Orders(ctx context.Context, params Params, format Format) (*xmldoc.Document, error) {
	if len(params) == 0 {
		params = Params{{Key: "command", Value: defaultOrdersCommand}}
	}
	return s.fetchResource(ctx, ResourceOrders, params, format)
}

func (s *Session) fetchResource(ctx context.Context, resource Resource, params Params, format Format) (*xmldoc.Document, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}

	resourceURL, err := s.BuildURL(resource, params)
	if err != nil {
		return nil, errors.Wrap(err, "[Session.fetchResource]")
	}

	body, err := s.transport.Get(ctx, resourceURL)
	if err != nil {
		return nil, errors.Wrap(err, "[Session.fetchResource] transport.Get")
	}

	doc, err := s.parse(body)
	if err != nil {
		return nil, errors.Wrap(err, "[Session.fetchResource] parse "+resource.path)
	}
	return doc, nil
}

// ImportProducts POSTs the product data file's bytes to the import
// resource and returns the raw response body. Fails with
// ErrDataSourceUnavailable when the file cannot be opened or read; the
// session's credential is untouched by any failure here.
func (s *Session) ImportProducts(ctx context.Context, datafile string, params Params, format Format) ([]byte, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}

	file, err := os.Open(datafile)
	if err != nil {
		return nil, errors.Wrap(ErrDataSourceUnavailable, err.Error())
	}
	defer func() { _ = file.Close() }()

	return s.ImportProductsFrom(ctx, file, params, format)
}

// ImportProductsFrom is ImportProducts for an already open data source.
func (s *Session) ImportProductsFrom(ctx context.Context, datasource io.Reader, params Params, format Format) ([]byte, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(datasource)
	if err != nil {
		return nil, errors.Wrap(ErrDataSourceUnavailable, err.Error())
	}

	importURL, err := s.BuildURL(ResourceProductsImport, params)
	if err != nil {
		return nil, errors.Wrap(err, "[Session.ImportProductsFrom]")
	}

	body, err := s.transport.PostBytes(ctx, importURL, data)
	if err != nil {
		return nil, errors.Wrap(err, "[Session.ImportProductsFrom] transport.PostBytes")
	}
	return body, nil
}

// CreateUserAccount creates a platform account for the given email, POSTing
// the structured field set form-encoded, and returns the raw response body.
func (s *Session) CreateUserAccount(ctx context.Context, email, firstName, lastName, accountType string, format Format) ([]byte, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}

	accountsURL, err := s.BuildURL(ResourceAccountsUser, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Session.CreateUserAccount]")
	}

	fields := url.Values{
		"command":    {"create"},
		"first_name": {firstName},
		"last_name":  {lastName},
		"email":      {email},
		"type":       {accountType},
		"format":     {string(FormatXML)},
	}

	body, err := s.transport.PostForm(ctx, accountsURL, fields)
	if err != nil {
		return nil, errors.Wrap(err, "[Session.CreateUserAccount] transport.PostForm")
	}
	return body, nil
}
