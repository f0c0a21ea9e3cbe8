package listview

import "smartpay/backend/models"

// StatusPolicy decides how a stored status is shown in a table and its export.
type StatusPolicy int

const (
	// StatusRaw shows the stored value as is.
	StatusRaw StatusPolicy = iota
	// StatusRelabel shows "Lunas" for paid rows and "Belum" for everything else.
	StatusRelabel
)

// Display returns the label for a stored status under the policy.
func (p StatusPolicy) Display(status string) string {
	if p == StatusRaw {
		return status
	}
	if status == models.StatusPaid {
		return models.LabelPaid
	}
	return models.LabelUnpaid
}
