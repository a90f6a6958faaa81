package clients

import (
	"context"
	"net/http"

	"github.com/acrsolucoedig-spec/cellparts/internal/cep"
	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

type ViaCepClient struct{ c *Client }

func NewViaCepClient(c *Client) *ViaCepClient { return &ViaCepClient{c: c} }

// Lookup validates the CEP locally; an invalid one never reaches the backend.
// The returned CEP is formatted as 00000-000.
func (vc *ViaCepClient) Lookup(ctx context.Context, raw string) (*model.Address, error) {
	code, err := cep.Validate(raw)
	if err != nil {
		return nil, err
	}
	var addr model.Address
	if err := vc.c.doJSON(ctx, http.MethodGet, "/viacep/"+code, nil, nil, &addr); err != nil {
		return nil, err
	}
	// Always answer with the masked form, whatever the backend sent.
	if n := cep.Normalize(addr.CEP); len(n) == cep.Length {
		code = n
	}
	addr.CEP = cep.Format(code)
	return &addr, nil
}
