package calculator

import "time"

// CalcRequest is the JSON body for POST /api/calculate. Operands are
// pointers so a missing field is rejected instead of read as zero.
type CalcRequest struct {
	A  *float64 `json:"a"`
	B  *float64 `json:"b"`
	Op string   `json:"op"`
}

// CalcResponse is the JSON response for POST /api/calculate. ID and
// CreatedAt identify the history entry the calculation was stored as.
type CalcResponse struct {
	ID        int64     `json:"id"`
	A         float64   `json:"a"`
	B         float64   `json:"b"`
	Op        Op        `json:"op"`
	Result    float64   `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}
