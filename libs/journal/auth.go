package journal

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Register creates an account and stores the returned token.
func (c *Client) Register(ctx context.Context, username, password string) (Token, error) {
	body, err := json.Marshal(Credentials{Username: username, Password: password})
	if err != nil {
		return Token{}, decodingError("credentials", err)
	}
	data, err := c.send(ctx, MethodPost, "/register", defaultHeaders(""), body)
	if err != nil {
		return Token{}, err
	}
	return c.acceptToken(data)
}

// LogIn exchanges form-encoded credentials for a token and stores it.
func (c *Client) LogIn(ctx context.Context, username, password string) (Token, error) {
	headers := defaultHeaders("")
	headers[HeaderContentType] = ContentTypeForm
	body := encodeForm(
		formPair{Key: "username", Value: username},
		formPair{Key: "password", Value: password},
	)
	data, err := c.send(ctx, MethodPost, "/token", headers, body)
	if err != nil {
		return Token{}, err
	}
	return c.acceptToken(data)
}

// LogOut forgets the token. No request is made.
func (c *Client) LogOut() {
	c.session.Clear()
	c.logger.Debug("journal session cleared")
}

func (c *Client) acceptToken(data []byte) (Token, error) {
	token, err := decode[Token]("token", data)
	if err != nil {
		return Token{}, err
	}
	c.session.Set(token)
	c.logger.Debug("journal session established", zap.String("token_type", token.TokenType))
	return token, nil
}
