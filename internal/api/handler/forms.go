package handler

// --- Form payloads ---

type addToCartRequest struct {
	// Quantity defaults to 1 when the field is left empty.
	Quantity string `form:"quantity" validate:"omitempty,number"`
}

type updateCartRequest struct {
	Quantity string `form:"quantity" validate:"required,numeric"`
}

type registerRequest struct {
	Username string `form:"username" validate:"required,max=64"`
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required,min=6,maxbytes=72"`
}

type loginRequest struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
}
