package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const onlyBytesRegex = "^[0-9]+$"
const sizeWithUnitRegex string = "^[0-9]+(kb|mb|gb|tb|KB|MB|GB|TB)$"

// ToBytes converts human size representations ("10MB", "512kb", "1048576")
// into a byte count.
func ToBytes(sizeRep string) (int64, error) {
	if sizeRep == "" {
		return 0, nil
	}

	rex := regexp.MustCompile(onlyBytesRegex)
	numberExpressedInBytes := rex.MatchString(sizeRep)
	if numberExpressedInBytes {
		inBytes, err := strconv.ParseInt(sizeRep, 10, 64)
		if err != nil {
			return 0, err
		}

		return inBytes, nil
	}

	rex = regexp.MustCompile(sizeWithUnitRegex)

	matches := rex.FindStringSubmatch(sizeRep)
	noUnitFound := len(matches) <= 1
	if noUnitFound {
		return 0, fmt.Errorf("invalid data size unit: %s", sizeRep)
	}

	unit := matches[1]
	rawSize := strings.Replace(sizeRep, unit, "", 1)
	size, err := strconv.ParseInt(rawSize, 10, 64)
	if err != nil {
		return 0, err
	}

	exponential := 0
	switch strings.ToLower(unit) {
	case "kb":
		exponential = 1
	case "mb":
		exponential = 2
	case "gb":
		exponential = 3
	case "tb":
		exponential = 4
	}

	//Doing exponentiation with integers (instead of float64) to allow bigger numbers
	sizeInBytes := size
	for i := 0; i < exponential; i++ {
		sizeInBytes *= 1024
	}
	return sizeInBytes, nil
}
