package dto

// CustomerInput alta/edición de cliente.
type CustomerInput struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
}

// SupplierInput alta/edición de proveedor.
type SupplierInput struct {
	Name          string `json:"name" form:"name"`
	ContactPerson string `json:"contact_person" form:"contact_person"`
	Email         string `json:"email" form:"email"`
	Phone         string `json:"phone" form:"phone"`
	Address       string `json:"address" form:"address"`
}
