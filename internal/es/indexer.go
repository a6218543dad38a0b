package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/campusmart/campus_market/internal/models"
)

// IndexProduct writes the listing into the search index under its id,
// replacing any previous version.
func IndexProduct(ctx context.Context, client *elasticsearch.Client, index string, p models.Product) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	res, err := client.Index(
		index,
		bytes.NewReader(body),
		client.Index.WithDocumentID(p.ID.String()),
		client.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("es index %s: %s", p.ID, res.Status())
	}
	return nil
}

// DeleteProduct removes the listing from the index. A missing document
// is fine: the index may simply not have seen it yet.
func DeleteProduct(ctx context.Context, client *elasticsearch.Client, index, id string) error {
	res, err := client.Delete(
		index,
		id,
		client.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete %s: %s", id, res.Status())
	}
	return nil
}
