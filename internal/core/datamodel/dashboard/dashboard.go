package dashboard

import "github.com/frahmantamala/trackit/internal/core/datamodel/incident"

type Totals struct {
	Materiels    int `json:"materiels"`
	Salles       int `json:"salles"`
	Positions    int `json:"positions"`
	Personnes    int `json:"personnes"`
	Utilisateurs int `json:"utilisateurs"`
}

type Stats struct {
	Totals              Totals              `json:"totals"`
	MaterielsParStatut  map[string]int      `json:"materiels_par_statut"`
	IncidentsOuverts    int                 `json:"incidents_ouverts"`
	InventairesEnCours  int                 `json:"inventaires_en_cours"`
	AffectationsActives int                 `json:"affectations_actives"`
	IncidentsRecents    []incident.Incident `json:"incidents_recents"`
}
