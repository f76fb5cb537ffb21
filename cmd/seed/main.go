package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"vahcare-api/internal/config"
	"vahcare-api/internal/store"
	"vahcare-api/pkg/models"
)

// sampleJobs holds the postings the seed command loads into an empty
// database. Titles and descriptions mirror the live site content.
var sampleJobs = []models.Job{
	{
		Title:       "Registered Nurse - Care Home",
		Location:    "England",
		Specialty:   "Registered Nurse",
		Description: "We are seeking a compassionate and skilled Registered Nurse to join our team at a well-established care home in England. The successful candidate will provide high-quality nursing care to our residents, ensuring their comfort, dignity, and well-being. You will work closely with our multidisciplinary team to develop and implement care plans, administer medications, and support families during their loved ones' care journey.",
		Salary:      "30,000 - 35,000",
	},
	{
		Title:       "Health Care Assistant - Dementia Care",
		Location:    "Wales",
		Specialty:   "Health Assistant",
		Description: "Join our dedicated team as a Health Care Assistant specializing in dementia care. This rewarding role involves providing person-centered care to residents with dementia and Alzheimer's disease. You will assist with daily living activities, provide emotional support, and help maintain a safe and stimulating environment. Experience in dementia care is preferred but full training will be provided.",
		Salary:      "22,000 - 25,000",
	},
	{
		Title:       "Kitchen Assistant - Nutritional Care",
		Location:    "England",
		Specialty:   "Kitchen Assistant",
		Description: "We are looking for a reliable Kitchen Assistant to join our nutrition team. You will be responsible for meal preparation, maintaining food safety standards, and ensuring our residents receive nutritious and appetizing meals. The role includes working with dietary requirements, allergen management, and supporting our head chef in daily kitchen operations.",
		Salary:      "20,000 - 23,000",
	},
	{
		Title:       "House Keeper - Infection Control Specialist",
		Location:    "Wales",
		Specialty:   "House Keeper",
		Description: "An opportunity for a dedicated House Keeper with focus on infection control and prevention. You will maintain the highest standards of cleanliness and hygiene throughout our care facility. Responsibilities include deep cleaning, laundry management, and ensuring compliance with health and safety regulations. Previous experience in healthcare cleaning is advantageous.",
		Salary:      "19,000 - 22,000",
	},
	{
		Title:       "Senior Registered Nurse - Night Shift",
		Location:    "England",
		Specialty:   "Registered Nurse",
		Description: "Experienced Registered Nurse required for our night shift team. This senior position involves overseeing the night-time care of residents, managing a small team of healthcare assistants, and ensuring continuity of care during overnight hours. The role requires excellent clinical skills, leadership abilities, and the capacity to handle emergency situations.",
		Salary:      "32,000 - 38,000",
	},
	{
		Title:       "Health Care Assistant - Rehabilitation Support",
		Location:    "England",
		Specialty:   "Health Assistant",
		Description: "Join our rehabilitation team as a Health Care Assistant supporting residents in their recovery journey. You will work alongside physiotherapists and occupational therapists to help residents regain independence and improve their quality of life. This role involves mobility assistance, therapeutic activities, and providing encouragement throughout the rehabilitation process.",
		Salary:      "23,000 - 26,000",
	},
	{
		Title:       "Kitchen Assistant - Special Diets",
		Location:    "Wales",
		Specialty:   "Kitchen Assistant",
		Description: "Specialized Kitchen Assistant position focusing on special dietary requirements including diabetic, pureed, and culturally specific meals. You will work closely with our nutrition team to ensure all residents receive appropriate meals that meet their individual needs while maintaining taste and presentation standards.",
		Salary:      "21,000 - 24,000",
	},
	{
		Title:       "House Keeper - Laundry Specialist",
		Location:    "England",
		Specialty:   "House Keeper",
		Description: "House Keeper role specializing in laundry and textile care for our residential facility. Responsibilities include managing the laundry operation, maintaining infection control protocols, and ensuring residents' personal clothing and facility linens are properly cared for. Attention to detail and understanding of fabric care is essential.",
		Salary:      "20,000 - 23,000",
	},
}

func main() {
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	st, err := store.New(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := st.ClearJobs(ctx); err != nil {
		log.Fatalf("Failed to clear existing jobs: %v", err)
	}
	fmt.Println("Cleared existing jobs")

	for i := range sampleJobs {
		job := sampleJobs[i]
		if err := st.CreateJob(ctx, &job); err != nil {
			log.Fatalf("Failed to seed job %q: %v", job.Title, err)
		}
		fmt.Printf("%d. %s - %s (%s)\n", i+1, job.Title, job.Location, job.Specialty)
	}

	fmt.Printf("Successfully seeded %d jobs\n", len(sampleJobs))
}
