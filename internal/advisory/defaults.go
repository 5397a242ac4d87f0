package advisory

import "github.com/krishimitra/leafscan/internal/domain"

// defaultRecords returns the built-in knowledge base. Content is general
// cultural-practice guidance, not prescriptive treatment; operators can
// override or extend it through the catalog file.
func defaultRecords() map[domain.DiseaseID]domain.AdvisoryRecord {
	return map[domain.DiseaseID]domain.AdvisoryRecord{
		domain.DiseaseHealthy: {
			DisplayName: "Healthy",
			Treatment: "No treatment required. Maintain good cultural practices " +
				"and keep monitoring for pests and diseases.",
			Prevention: []string{
				"Maintain balanced fertilization and irrigation",
				"Scout the crop regularly and remove volunteer plants",
				"Practice field sanitation between seasons",
			},
		},
		domain.DiseaseBacterialBlight: {
			DisplayName: "Bacterial Blight",
			Treatment: "Remove and destroy infected leaves and stems. Apply " +
				"copper-based bactericides where pressure is high, following the " +
				"product label and local extension guidance. Avoid working the " +
				"field while foliage is wet.",
			Prevention: []string{
				"Use certified disease-free seed and transplants",
				"Avoid overhead irrigation and prolonged leaf wetness",
				"Rotate away from host crops for at least two seasons",
				"Disinfect tools and stakes between plantings",
			},
		},
		domain.DiseaseLeafSpotEarly: {
			DisplayName: "Early Blight (Leaf Spot)",
			Treatment: "Prune out affected foliage and dispose of it away from " +
				"the field. Apply an approved protectant fungicide when lesions " +
				"first appear and repeat per label intervals.",
			Prevention: []string{
				"Rotate crops and avoid planting solanaceous hosts back-to-back",
				"Avoid excess nitrogen and keep plants unstressed",
				"Mulch to reduce soil splash onto lower leaves",
				"Improve drainage and airflow within the canopy",
			},
		},
		domain.DiseaseLeafSpotLate: {
			DisplayName: "Late Blight (Leaf Spot)",
			Treatment: "Remove and safely destroy heavily infected plants and " +
				"plant parts. Improve air circulation by pruning dense foliage. " +
				"Use copper-based or registered fungicides when disease pressure " +
				"is high, following label instructions and extension guidance.",
			Prevention: []string{
				"Plant resistant varieties where available",
				"Avoid overhead irrigation, water early in the day",
				"Rotate crops and remove volunteer solanaceous plants",
				"Ensure adequate spacing for airflow and monitor regularly",
			},
		},
	}
}
