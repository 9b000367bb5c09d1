package model

type Key struct {
	Pitch  uint8   `json:"pitch"`
	Name   string  `json:"name"`
	Black  bool    `json:"black"`
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
