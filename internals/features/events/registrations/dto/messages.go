package dto

import (
	"fmt"

	"vagsociety_backend/internals/features/events/registrations/model"
	helper "vagsociety_backend/internals/helpers"
)

var fieldMessages = map[model.Language]helper.FieldMessages{
	model.LanguageSerbian: {
		"fullName":       "Ime i prezime je obavezno (najmanje 2 karaktera).",
		"email":          "Unesite ispravnu email adresu.",
		"phone":          "Unesite ispravan broj telefona (najmanje 6 karaktera).",
		"carModel":       "Model automobila je obavezan.",
		"country":        "Država je obavezna.",
		"city":           "Grad je obavezan.",
		"additionalInfo": "Dodatne informacije mogu imati najviše 1000 karaktera.",
	},
	model.LanguageEnglish: {
		"fullName":       "Full name is required (at least 2 characters).",
		"email":          "Please enter a valid email address.",
		"phone":          "Please enter a valid phone number (at least 6 characters).",
		"carModel":       "Car model is required.",
		"country":        "Country is required.",
		"city":           "City is required.",
		"additionalInfo": "Additional info can have at most 1000 characters.",
	},
}

func FieldMessages(lang model.Language) helper.FieldMessages {
	if m, ok := fieldMessages[lang]; ok {
		return m
	}
	return fieldMessages[model.LanguageSerbian]
}

// Kode pelanggaran upload (lihat service.PolicyError).
const (
	UploadCount     = "count"
	UploadType      = "type"
	UploadFileSize  = "file_size"
	UploadTotalSize = "total_size"
)

// UploadMessage pesan untuk user sesuai kode pelanggaran upload.
func UploadMessage(lang model.Language, code string, minFiles, maxFiles int, fileMB, totalMB int64, filename string) string {
	if lang == model.LanguageEnglish {
		switch code {
		case UploadCount:
			return fmt.Sprintf("Please upload between %d and %d photos of your car.", minFiles, maxFiles)
		case UploadType:
			return fmt.Sprintf("File %q is not supported. Allowed formats: JPG, PNG, HEIC.", filename)
		case UploadFileSize:
			return fmt.Sprintf("File %q is larger than %d MB.", filename, fileMB)
		case UploadTotalSize:
			return fmt.Sprintf("Total size of photos must not exceed %d MB.", totalMB)
		}
		return "Photos could not be accepted."
	}
	switch code {
	case UploadCount:
		return fmt.Sprintf("Potrebno je priložiti od %d do %d fotografija automobila.", minFiles, maxFiles)
	case UploadType:
		return fmt.Sprintf("Fajl %q nije podržan. Dozvoljeni formati: JPG, PNG, HEIC.", filename)
	case UploadFileSize:
		return fmt.Sprintf("Fajl %q je veći od %d MB.", filename, fileMB)
	case UploadTotalSize:
		return fmt.Sprintf("Ukupna veličina fotografija ne sme biti veća od %d MB.", totalMB)
	}
	return "Fotografije nisu prihvaćene."
}

// Pesan sukses/gagal untuk user.
func SubmitSuccessMessage(lang model.Language) string {
	if lang == model.LanguageEnglish {
		return "Registration received. We will email you once it is reviewed."
	}
	return "Prijava je primljena. Poslaćemo vam email kada bude pregledana."
}

func SubmitFailedMessage(lang model.Language) string {
	if lang == model.LanguageEnglish {
		return "Registration could not be saved. Please try again."
	}
	return "Prijava nije sačuvana. Pokušajte ponovo."
}
