package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	sessionUserID   = "user_id"
	sessionNickname = "nickname"
)

// lenientInt accepts a JSON number or numeric string. Anything else, including
// null or a missing field, leaves it unset instead of failing the request.
type lenientInt struct {
	Value int
	Valid bool
}

func (n *lenientInt) UnmarshalJSON(data []byte) error {
	*n = lenientInt{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	if v, err := strconv.Atoi(raw); err == nil {
		*n = lenientInt{Value: v, Valid: true}
		return nil
	}

	// Integral floats such as 3.0 are accepted.
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == math.Trunc(f) && math.Abs(f) <= math.MaxInt32 {
		*n = lenientInt{Value: int(f), Valid: true}
	}
	return nil
}

// Or returns the value when valid and def otherwise.
func (n lenientInt) Or(def int) int {
	if n.Valid {
		return n.Value
	}
	return def
}

// bind parses the JSON body into dst and validates it.
func (h *Handler) bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgInvalidBody)
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate request: %w", err)
		}

		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed on %s", fe.Field(), fe.Tag()))
		}
		return fiber.NewError(fiber.StatusBadRequest, strings.Join(msgs, "; "))
	}

	return nil
}

// paramID reads a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, msgInvalidID)
	}
	return id, nil
}
