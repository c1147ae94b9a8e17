package songbook

// SongInfo is one entry of the printed rehearsal songbook
type SongInfo struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Page string `json:"page"`
}

// Songs is the rehearsal songbook in printed listing order
var Songs = []SongInfo{
	{Name: "An Old-Fashioned Christmas", Key: "C", Page: "1"},
	{Name: "Angels We Have Heard on High", Key: "B", Page: "5"},
	{Name: "Away in a Manger", Key: "D", Page: "6"},
	{Name: "Carol of the Bells", Key: "Bb", Page: "11"},
	{Name: "Carol of the Hand Bells", Key: "Bb", Page: "14"},
	{Name: "Caroling, Caroling", Key: "F", Page: "19"},
	{Name: "Christmas in Killarney", Key: "G", Page: "20"},
	{Name: "Deck the Hall", Key: "C", Page: "25"},
	{Name: "Do You Hear What I Hear?", Key: "Bb", Page: "127"},
	{Name: "Feast of Lights", Key: "D", Page: "26"},
	{Name: "Feliz Navidad", Key: "B", Page: "29"},
	{Name: "The First Noel", Key: "F#", Page: "32"},
	{Name: "Fum, Fum, Fum!", Key: "C", Page: "37"},
	{Name: "God Bless All", Key: "G", Page: "39"},
	{Name: "God Rest Ye Merry, Gentlemen", Key: "E", Page: "40"},
	{Name: "Good Christian Men, Rejoice", Key: "C", Page: "132"},
	{Name: "Good King Wenceslas", Key: "A", Page: "40"},
	{Name: "Grandma Got Run Over By a Reindeer", Key: "F", Page: "42"},
	{Name: "Happy Holiday / White Christmas", Key: "F", Page: "42"},
	{Name: "Hark! The Herald Angels Sing", Key: "A", Page: "46"},
	{Name: "Have a Jolly, Jolly, Jolly Christmas", Key: "D", Page: "50"},
	{Name: "Here Comes Santa Claus", Key: "F", Page: "133"},
	{Name: "Here We Come A-Caroling", Key: "C", Page: "55"},
	{Name: "A Holly, Jolly Christmas", Key: "Eb", Page: "57"},
	{Name: "The Holly and the Ivy", Key: "E", Page: "134"},
	{Name: "I Heard the Bells on Christmas Day", Key: "Eb", Page: "137"},
	{Name: "I Saw Three Ships", Key: "D", Page: "139"},
	{Name: "It Came Upon the Midnight Clear", Key: "F", Page: "62"},
	{Name: "It’s Beginning to Look Like Christmas", Key: "B", Page: "63"},
	{Name: "Jingle Bells", Key: "D", Page: "72"},
	{Name: "Jingle Bell Rock", Key: "Bb", Page: "67"},
	{Name: "Jolly Old St. Nicholas", Key: "D", Page: "73"},
	{Name: "Joy to the World", Key: "D", Page: "73"},
	{Name: "Let It Snow!", Key: "C", Page: "74"},
	{Name: "Lo, How a Rose E’er Blooming", Key: "D", Page: "140"},
	{Name: "Lullay, Thou Little Tiny Child", Key: "G", Page: "141"},
	{Name: "Mele Kalikimaka", Key: "D", Page: "81"},
	{Name: "O Christmas Tree", Key: "D", Page: "151"},
	{Name: "O Come, All Ye Faithful", Key: "A", Page: "83"},
	{Name: "O Holy Night", Key: "E", Page: "84"},
	{Name: "O Little Town of Bethlehem", Key: "A", Page: "86"},
	{Name: "Rudolph the Red-Nosed Reindeer", Key: "A", Page: "87"},
	{Name: "Santa Baby", Key: "Bb", Page: "89"},
	{Name: "Santa Claus Is Comin’ to Town", Key: "F", Page: "93"},
	{Name: "Silent Night", Key: "G", Page: "96"},
	{Name: "Silver Bells", Key: "C", Page: "97"},
	{Name: "Somewhere In My Memory", Key: "D", Page: "100"},
	{Name: "Still, Still, Still", Key: "G#", Page: "160"},
	{Name: "Up on the Housetop", Key: "Bb", Page: "110"},
	{Name: "We Need a Little Christmas", Key: "B", Page: "149"},
	{Name: "We Three Kings", Key: "B", Page: "111"},
	{Name: "What Child Is This?", Key: "E", Page: "112"},
	{Name: "Winter Wonderland", Key: "Ab", Page: "115"},
	{Name: "We Wish You a Merry Christmas", Key: "D", Page: "118"},
	{Name: "Baby, What You Gonna Be", Key: "Eb", Page: "7"},
	{Name: "Christmas Auld Lang Syne", Key: "D", Page: "119"},
	{Name: "Christmas Is", Key: "D/Bb", Page: "120"},
	{Name: "The Christmas Song", Key: "F", Page: "22"},
	{Name: "Frosty the Snowman", Key: "G", Page: "33"},
	{Name: "Have Yourself a Merry Little Christmas", Key: "G", Page: "51"},
	{Name: "Home for the Holidays", Key: "E", Page: "135"},
	{Name: "I’ll Be Home for Christmas", Key: "A", Page: "59"},
	{Name: "Little Drummer Boy", Key: "Eb", Page: "82"},
	{Name: "Mr. Santa", Key: "Bb", Page: "146"},
	{Name: "Sleigh Ride", Key: "D", Page: "156"},
	{Name: "Twelve Days After Christmas", Key: "A", Page: "104"},
	{Name: "White Christmas", Key: "G", Page: "113"},
	{Name: "You’re a Mean One, Mr. Grinch", Key: "—", Page: "—"},
}

// sheetMusicByTitle lists the scores available for in-app viewing
var sheetMusicByTitle = []struct {
	title string
	url   string
}{
	{"An Old-Fashioned Christmas", "https://32mw84.csb.app/scores/old-fashioned-christmas/old-fashioned-christmas.mxl"},
}
