package blob

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/gzip"
)

/*
 * Constants for the blob store.
 */
const (
	MAGIC_NUMBER             = 0x55424944424c4f42
	MODE_FILE    os.FileMode = 0644
	VERSION_MAJOR            = 1
	VERSION_MINOR            = 0
)

/*
 * The header of a blob file.
 */
type headerStruct struct {
	Magic        uint64
	VersionMajor uint8
	VersionMinor uint8
}

/*
 * A store serializing arbitrary values into files and deserializing
 * them back.
 *
 * Values are stored as a fixed header carrying a magic number and a
 * format version, followed by a compressed CBOR payload.
 */
type Store interface {
	Deserialize(path string, value interface{}) error
	Serialize(path string, value interface{}) error
}

/*
 * Data structure representing a blob store.
 */
type storeStruct struct {
}

/*
 * Reads a value from a blob file.
 *
 * The file must carry the expected magic number and a supported major
 * version.
 */
func (this *storeStruct) Deserialize(path string, value interface{}) error {
	content, err := os.ReadFile(path)

	/*
	 * Check if file could be read.
	 */
	if err != nil {
		msg := err.Error()
		return fmt.Errorf("Failed to read file '%s': %s", path, msg)
	} else {
		r := bytes.NewReader(content)
		header := headerStruct{}
		err := binary.Read(r, binary.BigEndian, &header)

		/*
		 * Check if header could be read.
		 */
		if err != nil {
			msg := err.Error()
			return fmt.Errorf("Failed to read header from file '%s': %s", path, msg)
		} else if header.Magic != MAGIC_NUMBER {
			return fmt.Errorf("File '%s' is not a blob file.", path)
		} else if header.VersionMajor != VERSION_MAJOR {
			return fmt.Errorf("File '%s' has unsupported major version %d. (Expected: %d)", path, header.VersionMajor, VERSION_MAJOR)
		} else {
			gzr, err := gzip.NewReader(r)

			/*
			 * Check if compressed payload could be opened.
			 */
			if err != nil {
				msg := err.Error()
				return fmt.Errorf("Failed to open compressed payload in file '%s': %s", path, msg)
			} else {
				payload, errRead := io.ReadAll(gzr)
				errClose := gzr.Close()

				/*
				 * Check if payload could be decompressed.
				 */
				if errRead != nil {
					msg := errRead.Error()
					return fmt.Errorf("Failed to decompress payload in file '%s': %s", path, msg)
				} else if errClose != nil {
					msg := errClose.Error()
					return fmt.Errorf("Failed to close compressed payload in file '%s': %s", path, msg)
				} else {
					err := cbor.Unmarshal(payload, value)

					/*
					 * Check if payload could be unmarshalled.
					 */
					if err != nil {
						msg := err.Error()
						return fmt.Errorf("Failed to unmarshal payload in file '%s': %s", path, msg)
					} else {
						return nil
					}

				}

			}

		}

	}

}

/*
 * Writes a value into a blob file, replacing any previous content.
 */
func (this *storeStruct) Serialize(path string, value interface{}) error {
	payload, err := cbor.Marshal(value)

	/*
	 * Check if value could be marshalled.
	 */
	if err != nil {
		msg := err.Error()
		return fmt.Errorf("Failed to marshal value: %s", msg)
	} else {
		buf := &bytes.Buffer{}

		/*
		 * Create blob file header.
		 */
		header := headerStruct{
			Magic:        MAGIC_NUMBER,
			VersionMajor: VERSION_MAJOR,
			VersionMinor: VERSION_MINOR,
		}

		err := binary.Write(buf, binary.BigEndian, &header)

		/*
		 * Check if header could be written.
		 */
		if err != nil {
			msg := err.Error()
			return fmt.Errorf("Failed to write header: %s", msg)
		} else {
			gzw, err := gzip.NewWriterLevel(buf, gzip.BestCompression)

			/*
			 * Check if compressed stream could be created.
			 */
			if err != nil {
				msg := err.Error()
				return fmt.Errorf("Failed to create compressed stream: %s", msg)
			} else {
				_, errWrite := gzw.Write(payload)
				errClose := gzw.Close()

				/*
				 * Check if payload could be compressed.
				 */
				if errWrite != nil {
					msg := errWrite.Error()
					return fmt.Errorf("Failed to compress payload: %s", msg)
				} else if errClose != nil {
					msg := errClose.Error()
					return fmt.Errorf("Failed to close compressed stream: %s", msg)
				} else {
					content := buf.Bytes()
					err := os.WriteFile(path, content, MODE_FILE)

					/*
					 * Check if file could be written.
					 */
					if err != nil {
						msg := err.Error()
						return fmt.Errorf("Failed to write file '%s': %s", path, msg)
					} else {
						return nil
					}

				}

			}

		}

	}

}

/*
 * Creates a blob store.
 */
func CreateStore() Store {
	store := storeStruct{}
	return &store
}
