package bakus

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Nomadcxx/bakus/internal/rename"
)

// RenameAddition submits a rename plan. Movie and TV renames share the
// endpoint and differ only in whether the request carries a season.
func (c *Client) RenameAddition(ctx context.Context, req rename.RenameRequest) error {
	if req.AdditionID == "" {
		return fmt.Errorf("rename: %w: missing addition id", ErrBadRequest)
	}
	endpoint := "/api/v1/addition/" + url.PathEscape(req.AdditionID) + "/rename/"
	if err := c.postNoContent(ctx, endpoint, req); err != nil {
		return fmt.Errorf("rename addition %s: %w", req.AdditionID, err)
	}
	return nil
}
