package i18n

var locales = map[string]map[string]string{
	"en": en,
	"es": es,
}

var greetings = map[string][]string{
	"en": {"hi", "hello", "hey", "good morning", "good afternoon", "good evening", "greetings"},
	"es": {"hola", "hey", "buenos días", "buenas tardes", "buenas noches", "saludos"},
}

var en = map[string]string{
	"welcome.greeting": "Hello {{name}}! Welcome to {{businessName}}.",
	"welcome.help":     "How can I help you today?",

	"menu.choose":   "Choose an option",
	"menu.schedule": "Schedule",
	"menu.consult":  "Consult",
	"menu.location": "Location",

	"appointment.enterName": "Please enter your name:",
	"appointment.petName":   "Thank you. Now, what's your pet's name?",
	"appointment.petType":   "Perfect. Now, what type of pet is it? (for example: dog, cat, ferret, etc.)",
	"appointment.reason":    "What's the reason for the appointment? (for example: vaccination, deworming, etc.)",

	"appointment.summary.title":    "Thank you {{name}} for scheduling your appointment.\nAppointment Summary:",
	"appointment.summary.name":     "Name: {{name}}",
	"appointment.summary.petName":  "Pet's name: {{petName}}",
	"appointment.summary.petType":  "Pet type: {{petType}}",
	"appointment.summary.reason":   "Reason: {{reason}}",
	"appointment.summary.followUp": "We will contact you soon to confirm the date and time of your appointment.",

	"location.name":    "MedPet Veterinary",
	"location.address": "Historic Center, Mexico City",

	"media.image":    "This is an Image!",
	"media.video":    "This is a video!",
	"media.audio":    "Welcome",
	"media.document": "This is a PDF!",

	"received.image":    "Thanks for the image, we will take a look!",
	"received.document": "Thanks for the document, we will take a look!",
	"received.location": "Thanks for sharing your location!",
	"received.contacts": "Thanks for sharing the contact!",

	"errors.userMenuOption":        "Sorry, I didn't understand your selection. Please choose one of the menu options",
	"errors.emptyInput":            "Please type an answer so we can continue.",
	"errors.inputTooLong":          "That answer is a bit too long, please keep it under {{max}} characters.",
	"errors.assistantUnavailable":  "Sorry, our assistant is unavailable right now. Please try again later.",

	"consult.prompt":          "What would you like to consult about?",
	"consult.feedback":        "Was my answer helpful?",
	"consult.thankYou":        "Yes, thank you",
	"consult.anotherQuestion": "Ask another question",
	"consult.emergency":       "Emergency",

	"contact.message":            "Here is our contact information for emergencies:",
	"contact.details.street":     "123 Pet Street",
	"contact.details.city":       "City",
	"contact.details.state":      "State",
	"contact.details.zip":        "12345",
	"contact.details.country":    "Country",
	"contact.details.email":      "contact@medpet.com",
	"contact.details.name":       "MedPet Contact",
	"contact.details.company":    "MedPet",
	"contact.details.department": "Customer Service",
	"contact.details.title":      "Representative",
	"contact.details.phone":      "+1234567890",
	"contact.details.website":    "https://www.medpet.com",
}

var es = map[string]string{
	"welcome.greeting": "¡Hola {{name}}! Bienvenido a {{businessName}}.",
	"welcome.help":     "¿En qué puedo ayudarte?",

	"menu.choose":   "Elige una opción",
	"menu.schedule": "Agendar",
	"menu.consult":  "Consultar",
	"menu.location": "Ubicación",

	"appointment.enterName": "Por favor, ingresa tu nombre:",
	"appointment.petName":   "Gracias. Ahora, ¿cuál es el nombre de tu mascota?",
	"appointment.petType":   "Perfecto. Ahora, ¿qué tipo de mascota es? (por ejemplo: perro, gato, hurón, etc.)",
	"appointment.reason":    "¿Cuál es el motivo de la cita? (por ejemplo: vacunación, desparasitación, etc.)",

	"appointment.summary.title":    "Gracias {{name}} por agendar tu cita.\nResumen de tu cita:",
	"appointment.summary.name":     "Nombre: {{name}}",
	"appointment.summary.petName":  "Nombre de la mascota: {{petName}}",
	"appointment.summary.petType":  "Tipo de mascota: {{petType}}",
	"appointment.summary.reason":   "Motivo: {{reason}}",
	"appointment.summary.followUp": "Nos pondremos en contacto contigo pronto para confirmar la fecha y hora de tu cita.",

	"location.name":    "MedPet Veterinaria",
	"location.address": "Centro Histórico, CDMX",

	"media.image":    "¡Esto es una Imagen!",
	"media.video":    "¡Esto es un video!",
	"media.audio":    "Bienvenida",
	"media.document": "¡Esto es un PDF!",

	"received.image":    "¡Gracias por la imagen, la revisaremos!",
	"received.document": "¡Gracias por el documento, lo revisaremos!",
	"received.location": "¡Gracias por compartir tu ubicación!",
	"received.contacts": "¡Gracias por compartir el contacto!",

	"errors.userMenuOption":        "Lo siento, no entendí tu selección. Por favor, elige una de las opciones del menú",
	"errors.emptyInput":            "Por favor, escribe una respuesta para poder continuar.",
	"errors.inputTooLong":          "Esa respuesta es demasiado larga, por favor usa menos de {{max}} caracteres.",
	"errors.assistantUnavailable":  "Lo sentimos, nuestro asistente no está disponible en este momento. Inténtalo más tarde.",

	"consult.prompt":          "Realiza tu consulta",
	"consult.feedback":        "¿La respuesta fue de tu ayuda?",
	"consult.thankYou":        "Sí, gracias",
	"consult.anotherQuestion": "Hacer otra pregunta",
	"consult.emergency":       "Emergencia",

	"contact.message":            "Aquí está nuestra información de contacto para emergencias:",
	"contact.details.street":     "123 Calle de las Mascotas",
	"contact.details.city":       "Ciudad",
	"contact.details.state":      "Estado",
	"contact.details.zip":        "12345",
	"contact.details.country":    "País",
	"contact.details.email":      "contacto@medpet.com",
	"contact.details.name":       "MedPet Contacto",
	"contact.details.company":    "MedPet",
	"contact.details.department": "Atención al Cliente",
	"contact.details.title":      "Representante",
	"contact.details.phone":      "+1234567890",
	"contact.details.website":    "https://www.medpet.com",
}
