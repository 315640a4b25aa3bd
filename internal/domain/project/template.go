package project

// activityTemplate is the fixed provisioning checklist every new project
// starts from. IDs restart at 1 per project; order is workflow order.
var activityTemplate = []Activity{
	{ID: 1, Name: "RICHIESTA FIBRA"},
	{ID: 2, Name: "RICHIESTA CONFIGURAZIONE IP DI MANAGEMENT"},
	{ID: 3, Name: "PROGETTO INVIATO A REALIZZAZIONI"},
	{ID: 4, Name: "PROGETTO INVIATO A SERVICE ACTIVATION"},
	{ID: 5, Name: "PROGETTO REALIZZATO"},
}

// TemplateActivities returns a fresh copy of the activity template with
// every item incomplete.
func TemplateActivities() []Activity {
	out := make([]Activity, len(activityTemplate))
	copy(out, activityTemplate)
	for i := range out {
		out[i].Completed = false
	}
	return out
}
