package frc

type Event struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	EventCode string `json:"event_code"`
	City      string `json:"city"`
	StateProv string `json:"state_prov"`
	Country   string `json:"country"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Year      int    `json:"year"`
	// IANA zone name, e.g. "America/Toronto"
	Timezone string `json:"timezone"`
}

// DisplayName falls back to the event key when the provider has no name.
func (e Event) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Key
}
