package position

type PositionDTO struct {
	Libelle string `json:"libelle" validate:"required"`
	Port    string `json:"port" validate:"required"`
	Occupe  bool   `json:"occupe"`
	SalleID int64  `json:"salle_id" validate:"required,gt=0"`
}
