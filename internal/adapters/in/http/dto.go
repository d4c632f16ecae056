package http

import "time"

// Request bodies. Monetary amounts travel as decimal floats and are
// converted to cents at the boundary; identifiers are canonical UUID
// strings.

type createOrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type createOrderRequest struct {
	CustomerID            string            `json:"customer_id"`
	DeliveryAddress       string            `json:"delivery_address"`
	DeliveryInstructions  *string           `json:"delivery_instructions,omitempty"`
	EstimatedDeliveryTime *time.Time        `json:"estimated_delivery_time,omitempty"`
	Items                 []createOrderItem `json:"items"`
	Total                 float64           `json:"total"`
}

type assignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

type changeOrderStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

type updateOrderRequest struct {
	DeliveryInstructions  *string    `json:"delivery_instructions,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
}

type submitProofRequest struct {
	Type      string   `json:"pod_type"`
	Payload   string   `json:"pod_data"`
	Notes     *string  `json:"notes,omitempty"`
	Latitude  *float64 `json:"location_lat,omitempty"`
	Longitude *float64 `json:"location_lng,omitempty"`
}

type registerDriverRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type changeDriverStatusRequest struct {
	Status string `json:"status"`
}

type reportLocationRequest struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// createdResponse carries the id of a freshly created resource.
type createdResponse struct {
	ID string `json:"id"`
}
