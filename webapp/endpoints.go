package webapp

import "fmt"

// Endpoints resolves API resource URLs from the configured base
type Endpoints struct {
	BaseURL string
}

func (e Endpoints) NationalParks() string {
	return e.BaseURL + "/api/v1/nationalparks"
}

func (e Endpoints) Trails() string {
	return e.BaseURL + "/api/v1/trails"
}

func (e Endpoints) TrailsInPark(nationalParkID int64) string {
	return fmt.Sprintf("%s/nationalpark/%d", e.Trails(), nationalParkID)
}

func (e Endpoints) Authenticate() string {
	return e.BaseURL + "/api/v1/users/authenticate"
}

func (e Endpoints) Register() string {
	return e.BaseURL + "/api/v1/users/register"
}
